package config

type StorageConfig struct {
	Provider  string `yaml:"provider"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"`
	BaseURL   string `yaml:"base_url"`
	LocalPath string `yaml:"local_path"`
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		Region:    getEnv("STORAGE_REGION", "us-east-1"),
		Bucket:    getEnv("STORAGE_BUCKET", "gocart-uploads"),
		AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
		BaseURL:   getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		LocalPath: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
	}
}
