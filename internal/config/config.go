package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values
	"time"    // For time zones and durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string         // Application port
	DBUser          string         // Database user
	DBPassword      string         // Database password
	DBHost          string         // Database host
	DBPort          string         // Database port
	DBName          string         // Database name
	JWTSecret       string         // Session signing key
	SessionTTL      time.Duration  // Session cookie lifetime
	RedisAddr       string         // Redis server address
	RedisPass       string         // Redis password
	RedisDB         int            // Redis database number
	CacheTTL        time.Duration  // Restaurant cache lifetime
	IsProd          bool           // Is production environment
	UploadDir       string         // Directory for uploaded restaurant images
	MaxUploadBytes  int64          // Upper bound on a multipart request body
	Location        *time.Location // Time zone used to decide what "today" is
	AdminUsernames  []string       // Usernames promoted to admin at migration
	LoginRatePerMin int            // Login/signup attempts allowed per client per minute
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:         getenv("APP_PORT", "8080"),                                   // Application port
		DBUser:          os.Getenv("DB_USER"),                                         // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),                                     // Database password
		DBHost:          getenv("DB_HOST", "127.0.0.1"),                               // Database host
		DBPort:          getenv("DB_PORT", "3306"),                                    // Database port
		DBName:          getenv("DB_NAME", "restaurant_booking"),                      // Database name
		JWTSecret:       os.Getenv("JWT_SECRET"),                                      // Session signing key
		SessionTTL:      time.Duration(getint("SESSION_TTL_HOURS", 24)) * time.Hour,   // Session lifetime
		RedisAddr:       getenv("REDIS_ADDR", "127.0.0.1:6379"),                       // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),                                      // Redis password
		RedisDB:         redisDB,                                                      // Redis database number
		CacheTTL:        time.Duration(getint("CACHE_TTL_SECONDS", 60)) * time.Second, // Cache lifetime
		IsProd:          os.Getenv("IS_PROD") == "true",                               // Is production environment
		UploadDir:       getenv("UPLOAD_DIR", "public/uploads"),                       // Upload directory
		MaxUploadBytes:  int64(getint("MAX_UPLOAD_MB", 5)) << 20,                      // Upload limit in bytes
		Location:        location(os.Getenv("TIMEZONE")),                              // Time zone
		AdminUsernames:  splitList(os.Getenv("ADMIN_USERNAMES")),                      // Admin promotion list
		LoginRatePerMin: getcount("LOGIN_RATE_PER_MINUTE", 10),                        // Login throttling, 0 disables
	}
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=true&loc=Local"
}

// getenv returns the variable or a fallback when it is unset
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getint returns a positive integer variable or a fallback
func getint(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// getcount is getint that also accepts zero
func getcount(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func location(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
