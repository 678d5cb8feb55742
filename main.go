package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/sessionstore"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	rootLogger         *logrus.Logger
	appLogger          *logrus.Entry
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	sessionStore       i.SessionStore
	solvedArchive      i.SolvedArchive
	jwtTokenizer       i.Tokenizer
	mazeSessionManager i.MazeSessionManager
	mazeController     api_i.Controller
	router             *api.Router
)

func initLogger() {
	rootLogger = config.NewLogger(config.Envs.AppEnv, config.Envs.LogLevel, os.Stdout)
	appLogger = config.Component(rootLogger, "APP")
	gin.SetMode(config.Envs.GinMode)
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.WithError(err).Error("MongoDB ping failed")
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initSolvedArchive(client *mongo.Client) {
	solvedArchive = repo.NewSolvedMazeRepo(client, config.Envs.DBName, "solved_mazes")
	appLogger.Info("Solved maze archive initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.WithError(err).Error("Redis ping failed")
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initSessionStore(client *redis.Client) {
	var err error
	sessionStore, err = sessionstore.NewRedisSessionStore(sessionstore.Config{
		Client:    client,
		KeyPrefix: config.Envs.RedisKeyPrefix,
		TTL:       time.Duration(config.Envs.SessionTTLHours) * time.Hour,
	})
	if err != nil {
		appLogger.WithError(err).Error("Creating session store")
		os.Exit(1)
	}
	appLogger.Info("Session store initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initSessionManager() {
	defaults := service.MazeDefaults{
		Width:       config.Envs.Maze.Width,
		Height:      config.Envs.Maze.Height,
		RandomStart: config.Envs.Maze.RandomStart,
	}
	if !defaults.RandomStart {
		defaults.Start = &maze.Cell{X: config.Envs.Maze.StartX, Y: config.Envs.Maze.StartY}
	}

	var err error
	mazeSessionManager, err = service.NewMazeSessionManager(&service.Config{
		Store:     sessionStore,
		Archive:   solvedArchive,
		Tokenizer: jwtTokenizer,
		Defaults:  defaults,
		TokenTTL:  time.Duration(config.Envs.SessionTTLHours) * time.Hour,
		Logger:    config.Component(rootLogger, "SESSION-MANAGER"),
	})
	if err != nil {
		appLogger.WithError(err).Error("Creating maze session manager")
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeapi.Config{
		Sessions:      mazeSessionManager,
		DividerPixels: config.Envs.Maze.DividerPixels,
		Logger:        config.Component(rootLogger, "MAZE-API"),
	})
	if err != nil {
		appLogger.WithError(err).Error("Creating maze controller")
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
		Logger:                  config.Component(rootLogger, "HTTP"),
	})
	appLogger.Info("Router initialized")
}

func main() {
	initLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initSolvedArchive(mongoClient)

	initRedis(ctx)
	defer redisClient.Close()
	initSessionStore(redisClient)

	initJWTTokenizer()
	initSessionManager()
	initMazeController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.WithError(err).Error("Starting server")
		os.Exit(1)
	}
}
