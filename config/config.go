package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	MongoURI       string
	MongoDatabase  string
	Port           string
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	OTPTTL         time.Duration
	SendGridAPIKey string
	EmailFromName  string
	EmailFromAddr  string
	AWSRegion      string
	AWSBucketName  string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	MongoDatabase = os.Getenv("MONGO_DB")
	if MongoDatabase == "" {
		MongoDatabase = "fitly"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	JWTSecret = os.Getenv("JWT_SECRET")
	if JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	JWTTTL = time.Duration(intEnv("JWT_TTL_HOURS", 24*7)) * time.Hour
	BcryptCost = intEnv("BCRYPT_COST", 10)
	OTPTTL = time.Duration(intEnv("OTP_TTL_SECONDS", 300)) * time.Second

	SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	EmailFromName = os.Getenv("EMAIL_FROM_NAME")
	if EmailFromName == "" {
		EmailFromName = "Fitly App"
	}
	EmailFromAddr = os.Getenv("EMAIL_FROM_ADDR")
	if EmailFromAddr == "" {
		EmailFromAddr = "no-reply@fitly.app"
	}

	AWSRegion = os.Getenv("AWS_REGION")
	if AWSRegion == "" {
		AWSRegion = "us-east-1"
	}
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	return nil
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
