package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Knowledge KnowledgeConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Admin     AdminConfig
	Snapshot  SnapshotConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	NatsURL            string // empty disables cross-service events
	RedisURL           string // empty keeps sessions in process memory
	SessionTTLMinutes  int
	OtelEnabled        bool
}

type KnowledgeConfig struct {
	BeansPath           string
	RecipesPath         string
	TroubleshootingPath string
	TrainingDataPath    string
	IntentExamplesPath  string
}

type DatabaseConfig struct {
	Connection string // empty disables transcripts and the embedding cache
}

type APIKeys struct {
	GoogleGemini   string
	OpenAI         string
	Anthropic      string
	KnowledgeTopic string // watermill topic for knowledge.changed
}

type AIConfig struct {
	LLMProvider       string // "gemini" | "ollama" | "openai" | "anthropic"
	LLMModel          string
	LLMTimeoutSeconds int
	EmbeddingProvider string // "gemini" | "ollama" | "openai"
	EmbeddingModel    string
	OllamaBaseURL     string
	IntentClassifier  string // "embedding" | "llm"
	NeighbourCount    int
}

type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt
	JwtSecret    string
	TokenHours   int
}

type SnapshotConfig struct {
	Bucket    string // empty disables snapshots
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/websocket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			SessionTTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 120),
			OtelEnabled:        getEnv("OTEL_ENABLED", "false") == "true",
		},
		Knowledge: KnowledgeConfig{
			BeansPath:           getEnv("BEANS_PATH", "datasets/coffee_beans.json"),
			RecipesPath:         getEnv("RECIPES_PATH", "datasets/brew_recipes.json"),
			TroubleshootingPath: getEnv("TROUBLESHOOTING_PATH", "datasets/troubleshooting_knowledge_base.json"),
			TrainingDataPath:    getEnv("TRAINING_DATA_PATH", "datasets/doctor_problem_training_data.csv"),
			IntentExamplesPath:  getEnv("INTENT_EXAMPLES_PATH", "datasets/intent_examples.yaml"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:         getEnv("OPENAI_API_KEY", ""),
			Anthropic:      getEnv("ANTHROPIC_API_KEY", ""),
			KnowledgeTopic: getEnv("KNOWLEDGE_TOPIC_NAME", "knowledge.changed"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-2.5-flash"),
			LLMTimeoutSeconds: getEnvAsInt("LLM_TIMEOUT_SECONDS", 60),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			IntentClassifier:  getEnv("INTENT_CLASSIFIER", "embedding"),
			NeighbourCount:    getEnvAsInt("CLASSIFIER_NEIGHBOURS", 5),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JwtSecret:    getEnv("JWT_SECRET", "default_secret"),
			TokenHours:   getEnvAsInt("ADMIN_TOKEN_HOURS", 24),
		},
		Snapshot: SnapshotConfig{
			Bucket:    getEnv("SNAPSHOT_BUCKET", ""),
			Prefix:    getEnv("SNAPSHOT_PREFIX", "knowledge"),
			Region:    getEnv("SNAPSHOT_REGION", "us-east-1"),
			Endpoint:  getEnv("SNAPSHOT_ENDPOINT", ""),
			AccessKey: getEnv("SNAPSHOT_ACCESS_KEY", ""),
			SecretKey: getEnv("SNAPSHOT_SECRET_KEY", ""),
		},
	}
}

// APIKeyFor returns the key a provider name needs.
func (k APIKeys) APIKeyFor(provider string) string {
	switch provider {
	case "gemini":
		return k.GoogleGemini
	case "openai":
		return k.OpenAI
	case "anthropic":
		return k.Anthropic
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
