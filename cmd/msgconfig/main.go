package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/messaging-config/internal/application"
	"github.com/eugenenazirov/messaging-config/internal/config"
	"github.com/eugenenazirov/messaging-config/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("msgconfig", "Messaging configuration provider - resolves and inspects mp.messaging.* properties")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	var fixtureSet, envSet bool
	fixture := kingpinApp.Flag("fixture", "Include the built-in Dummy connector fixture (on by default, --no-fixture disables it)").IsSetByUser(&fixtureSet).Bool()
	env := kingpinApp.Flag("env", "Include MP_MESSAGING_* and mp.messaging.* environment variables as a property source").IsSetByUser(&envSet).Bool()
	propertyFiles := kingpinApp.Flag("property-file", "YAML or .properties file to load (repeatable)").Short('f').Strings()
	redisAddr := kingpinApp.Flag("redis-addr", "Redis address holding a property hash").String()
	redisKey := kingpinApp.Flag("redis-key", "Redis hash key whose fields are property names").String()
	coercion := kingpinApp.Flag("coercion", "Value coercion policy").Enum(config.CoercionParse, config.CoercionIdentity)

	serveCmd := kingpinApp.Command("serve", "Serve the read-only introspection API")
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPS := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurst := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	getCmd := kingpinApp.Command("get", "Print one property value")
	getName := getCmd.Arg("name", "Fully qualified property name").Required().String()
	getType := getCmd.Flag("type", "Type to convert the value to").Default("string").Enum(valueTypeNames()...)
	getOptional := getCmd.Flag("optional", "Succeed with no output when the property is absent").Bool()

	listCmd := kingpinApp.Command("list", "List every property name")
	sourcesCmd := kingpinApp.Command("sources", "List the property sources, most specific first")
	channelsCmd := kingpinApp.Command("channels", "Show the channel topology and validate it")

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile:    *configFile,
		LogLevel:      logLevel,
		PropertyFiles: *propertyFiles,
		RedisAddr:     redisAddr,
		RedisKey:      redisKey,
		Coercion:      coercion,
		Port:          port,
	}
	if fixtureSet {
		overrides.Fixture = fixture
	}
	if envSet {
		overrides.Env = env
	}
	if *rateLimitRPS >= 0 {
		overrides.RateLimitRPS = rateLimitRPS
	}
	if *rateLimitBurst >= 0 {
		overrides.RateLimitBurst = rateLimitBurst
	}

	cfg, err := config.Load(overrides)
	kingpinApp.FatalIfError(err, "failed to load configuration")

	logger, err := logging.New(cfg.LogLevel)
	kingpinApp.FatalIfError(err, "failed to initialize logger")
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	if command == serveCmd.FullCommand() {
		app, err := application.New(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("failed to initialize application", zap.Error(err))
		}
		if err := app.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}
		shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
		return
	}

	p, err := application.BuildProvider(ctx, cfg.Sources, logger)
	if err != nil {
		logger.Fatal("failed to build configuration provider", zap.Error(err))
	}

	switch command {
	case getCmd.FullCommand():
		err = runGet(os.Stdout, p, *getName, *getType, *getOptional)
	case listCmd.FullCommand():
		err = runList(os.Stdout, p)
	case sourcesCmd.FullCommand():
		err = runSources(os.Stdout, p)
	case channelsCmd.FullCommand():
		err = runChannels(os.Stdout, p)
	}
	if err != nil {
		_ = logger.Sync()
		kingpinApp.Fatalf("%s: %v", command, err)
	}
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
