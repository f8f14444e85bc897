package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	MongoURI          string
	DBName            string
	JWTSecret         string
	RedisURL          string
	CloudinaryURL     string
	GoogleClientID    string
	GoogleSecret      string
	VapidPublicKey    string
	VapidPrivateKey   string
	VapidSubscriber   string
	DiscoveryRadiusKm float64
	Environment       string
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found, relying on environment")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		MongoURI:          getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		DBName:            getEnv("MONGODB_DB", "homiefinder"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		CloudinaryURL:     getEnv("CLOUDINARY_URL", ""),
		GoogleClientID:    getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:      getEnv("GOOGLE_CLIENT_SECRET", ""),
		VapidPublicKey:    getEnv("VAPID_PUBLIC_KEY", ""),
		VapidPrivateKey:   getEnv("VAPID_PRIVATE_KEY", ""),
		VapidSubscriber:   getEnv("VAPID_SUBSCRIBER", "mailto:admin@homiefinder.app"),
		DiscoveryRadiusKm: getEnvFloat("DISCOVERY_RADIUS_KM", 25),
		Environment:       getEnv("ENV", "development"),
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("⚠️  Invalid float for %s (%q), using default %v", key, value, fallback)
		return fallback
	}
	return f
}
