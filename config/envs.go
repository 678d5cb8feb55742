package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	RedisAddr       string // Address of the Redis server holding session state
	RedisPassword   string // Password for Redis
	RedisDB         int    // Redis logical database
	RedisKeyPrefix  string // Prefix of every session key
	SessionTTLHours int    // Idle lifetime of a session, in hours
	DBHost          string // Hostname or IP address for the database
	DBPort          int    // Port number for the database
	DBUser          string // Username for the database
	DBPassword      string // Password for the database
	DBName          string // Name of the database
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret       string // Secret key for JWT signing
	JWTIssuer       string // Issuer claim for JWTs
	AppEnv          string // Deployment environment; "production" switches to JSON logs
	LogLevel        string // Logrus level name
	Maze            MazeConfig
}

// MazeConfig holds the layout of mazes generated when a client sends no options.
type MazeConfig struct {
	Width         int  // Width in cells
	Height        int  // Height in cells
	RandomStart   bool // Start on a random cell instead of StartX, StartY
	StartX        int  // Column of the fixed start cell
	StartY        int  // Row of the fixed start cell
	DividerPixels int  // Wall thickness reported to renderers
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:          mustGetEnv("HOST_IP"),
		RESTPort:        mustGetEnvAsInt("REST_PORT"),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsIntWithDefault("REDIS_DB", 0),
		RedisKeyPrefix:  getEnvWithDefault("REDIS_KEY_PREFIX", "vinom-maze:"),
		SessionTTLHours: getEnvAsIntWithDefault("SESSION_TTL_HOURS", 24),
		DBHost:          mustGetEnv("DB_HOST"),
		DBPort:          mustGetEnvAsInt("DB_PORT"),
		DBUser:          mustGetEnv("DB_USER"),
		DBPassword:      mustGetEnv("DB_PASS"),
		DBName:          mustGetEnv("DB_NAME"),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:       mustGetEnv("JWT_SECRET"),
		JWTIssuer:       mustGetEnv("JWT_ISSUER"),
		AppEnv:          getEnvWithDefault("APP_ENV", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		Maze: MazeConfig{
			Width:         getEnvAsIntWithDefault("MAZE_WIDTH", 25),
			Height:        getEnvAsIntWithDefault("MAZE_HEIGHT", 13),
			RandomStart:   getEnvAsBoolWithDefault("MAZE_RANDOM_START", false),
			StartX:        getEnvAsIntWithDefault("MAZE_START_X", 0),
			StartY:        getEnvAsIntWithDefault("MAZE_START_Y", 0),
			DividerPixels: getEnvAsIntWithDefault("MAZE_DIVIDER_PIXELS", 10),
		},
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault is getEnvWithDefault for integers; a value that does not parse is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a boolean: %v", key, err)
	}
	return value
}
