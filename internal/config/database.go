package config

import "time"

type DatabaseConfig struct {
	URI             string        `yaml:"uri"`
	Database        string        `yaml:"database"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxIdleTime     time.Duration `yaml:"max_idle_time"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	RetryWrites     bool          `yaml:"retry_writes"`
	RetryReads      bool          `yaml:"retry_reads"`
	MigrationsPath  string        `yaml:"migrations_path"`
	EnableMigration bool          `yaml:"enable_migration"`
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URI:             getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:        getEnv("MONGODB_DATABASE", "gocart"),
		MaxPoolSize:     uint64(getEnvAsInt("MONGODB_MAX_POOL_SIZE", 100)),
		MinPoolSize:     uint64(getEnvAsInt("MONGODB_MIN_POOL_SIZE", 5)),
		MaxIdleTime:     getEnvAsDuration("MONGODB_MAX_IDLE_TIME", 10*time.Minute),
		ConnectTimeout:  getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		RequestTimeout:  getEnvAsDuration("MONGODB_REQUEST_TIMEOUT", 30*time.Second),
		RetryWrites:     getEnvAsBool("MONGODB_RETRY_WRITES", true),
		RetryReads:      getEnvAsBool("MONGODB_RETRY_READS", true),
		MigrationsPath:  getEnv("MONGODB_MIGRATIONS_PATH", "./migrations"),
		EnableMigration: getEnvAsBool("MONGODB_ENABLE_MIGRATION", true),
	}
}
