package config

type PushConfig struct {
	Enabled            bool   `yaml:"enabled"`
	FCMCredentialsFile string `yaml:"fcm_credentials_file"`
	FCMProjectID       string `yaml:"fcm_project_id"`
}

func loadPushConfig() *PushConfig {
	return &PushConfig{
		Enabled:            getEnvAsBool("PUSH_ENABLED", false),
		FCMCredentialsFile: getEnv("FCM_CREDENTIALS_FILE", ""),
		FCMProjectID:       getEnv("FCM_PROJECT_ID", ""),
	}
}
