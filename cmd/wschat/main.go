package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexcesaro/log"
	"github.com/alexcesaro/log/golog"
	"github.com/caarlos0/env/v11"
	flags "github.com/jessevdk/go-flags"

	"wschat"
	"wschat/chat"
	"wschat/joke"
	"wschat/wsd"

	_ "net/http/pprof"
)

// Version of the binary, assigned during build.
var Version string = "dev"

// Options contains the flag options
type Options struct {
	Verbose []bool `short:"v" long:"verbose" description:"Show verbose logging."`
	Version bool   `long:"version" description:"Print version and exit."`
	Bind    string `long:"bind" description:"Host and port to listen on." default:"0.0.0.0:3000"`
	Static  string `long:"static" description:"Directory of browser client assets to serve." default:"static"`
	Log     string `long:"log" description:"Write chat server log to this file."`
	Pprof   int    `long:"pprof" description:"Enable pprof http server for profiling."`
}

// Config contains the environment options
type Config struct {
	JokeURL      string        `env:"WSCHAT_JOKE_URL"`
	JokeTimeout  time.Duration `env:"WSCHAT_JOKE_TIMEOUT" envDefault:"5s"`
	PingInterval time.Duration `env:"WSCHAT_PING_INTERVAL" envDefault:"54s"`
	SendBuffer   int           `env:"WSCHAT_SEND_BUFFER" envDefault:"256"`
}

var logLevels = []log.Level{
	log.Warning,
	log.Info,
	log.Debug,
}

func fail(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(code)
}

func main() {
	options := Options{}
	parser := flags.NewParser(&options, flags.Default)
	p, err := parser.Parse()
	if err != nil {
		if p == nil {
			fmt.Print(err)
		}
		return
	}

	if options.Pprof != 0 {
		go func() {
			fmt.Println(http.ListenAndServe(fmt.Sprintf("localhost:%d", options.Pprof), nil))
		}()
	}

	if options.Version {
		fmt.Println(Version)
		return
	}

	var config Config
	if err := env.Parse(&config); err != nil {
		fail(1, "Failed to parse environment: %v\n", err)
	}

	// Figure out the log level
	numVerbose := len(options.Verbose)
	if numVerbose >= len(logLevels) {
		numVerbose = len(logLevels) - 1
	}

	logLevel := logLevels[numVerbose]

	logOut := os.Stderr
	if options.Log != "" && options.Log != "-" {
		fp, err := os.OpenFile(options.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fail(2, "Failed to open log file for writing: %v\n", err)
		}
		logOut = fp
	}

	logger := golog.New(logOut, logLevel)
	wschat.SetLogger(logger)

	if logLevel == log.Debug {
		// Enable logging from submodules
		chat.SetLogger(logOut)
		wsd.SetLogger(logOut)
	}

	listener, err := wsd.Listen(options.Bind, wsd.Options{
		StaticDir:    options.Static,
		PingInterval: config.PingInterval,
		SendBuffer:   config.SendBuffer,
	})
	if err != nil {
		fail(3, "Failed to listen on socket: %v\n", err)
	}
	defer listener.Close()

	fmt.Printf("Listening for connections on %v\n", listener.Addr().String())

	jokes := joke.NewClient(config.JokeURL, config.JokeTimeout)
	host := wschat.NewHost(listener, jokes)
	go host.Serve()

	// Construct interrupt handler
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	<-sig // Wait for ^C signal
	fmt.Fprintln(os.Stderr, "Interrupt signal detected, shutting down.")
}
