package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/layertx/api"
	"github.com/matt-g-everett/layertx/script"
	"github.com/matt-g-everett/layertx/stream"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Controller *stream.Controller
	Streamer   *stream.Streamer
	Api        *api.Api
}

func newApp(config stream.Config) *app {
	a := new(app)
	a.Config = config
	a.Controller = stream.NewController(config)
	a.Api = api.NewApi(config.HTTPAddr, config.Static, a.Controller)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Info().Str("broker", a.Config.Mqtt.URL).Msg("connected")
	if err := a.Streamer.Subscribe(); err != nil {
		log.Error().Err(err).Msg("subscribe failed")
	}
}

func (a *app) handleConnectionLost(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("connection lost")
}

func (a *app) connect() {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect).
		SetConnectionLostHandler(a.handleConnectionLost)
	a.Client = mqtt.NewClient(options)
	a.Streamer = stream.NewStreamer(a.Config, a.Client, a.Controller)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Str("broker", a.Config.Mqtt.URL).Msg("connect failed")
	}
}

func (a *app) loadProgram(path string) {
	p, err := script.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("program load failed")
	}
	if err := a.Controller.Apply(p); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("program apply failed")
	}
	log.Info().Str("path", path).Int("blocks", len(p.Blocks)).Int("commands", p.Len()).Msg("program queued")
}

func (a *app) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Controller.Run(ctx) })
	g.Go(func() error { return a.Api.Serve(ctx) })
	if a.Client != nil {
		g.Go(func() error {
			<-ctx.Done()
			a.Client.Disconnect(250)
			return nil
		})
	}
	return g.Wait()
}

func main() {
	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	programPath := flag.String("program", "", "YAML layer program queued at start-up.")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// Read the config
	config, err := stream.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
	}
	if level, err := zerolog.ParseLevel(config.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("level", config.LogLevel).Msg("unknown log level")
	}
	log.Debug().Interface("config", config).Msg("config")

	a := newApp(config)
	if *programPath != "" {
		config.Program = *programPath
	}
	if config.Program != "" {
		a.loadProgram(config.Program)
	}
	if config.Mqtt.URL != "" {
		a.connect()
	} else {
		log.Warn().Msg("no mqtt url configured; streaming disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := a.run(ctx); err != nil {
		log.Fatal().Err(err).Msg("stopped")
	}
	log.Info().Msg("shut down")
}
