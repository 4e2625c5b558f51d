package main

import "time"

type Config struct {
	Port        int           `env:"PORT,default=8080"`
	DatabaseURL string        `env:"DATABASE_URL,required=true"`
	RedisURL    string        `env:"REDIS_URL,required=true"`
	MongoURI    string        `env:"MONGODB_URI,required=true"`
	JWTSecret   string        `env:"JWT_SECRET,required=true"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,default=24h"`
}
