package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"repo-crawler/pkg/config"
	"repo-crawler/pkg/crawler"
	"repo-crawler/pkg/fetch"
)

func main() {
	// --- Early Initialization & Flags ---
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel) // Default level

	inputFileFlag := flag.String("input", "", "Path to JSON crawl input file (required)")
	configFileFlag := flag.String("config", "", "Path to optional YAML config file")
	outputFileFlag := flag.String("output", "crawl_result.json", "Path for the result JSON file")
	logLevelFlag := flag.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")
	flag.Parse()

	// --- Logger Configuration ---
	level, err := logrus.ParseLevel(*logLevelFlag)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", *logLevelFlag, err)
	} else {
		log.SetLevel(level)
	}

	// --- Load Application Configuration ---
	var appCfg config.AppConfig
	if *configFileFlag != "" {
		log.Infof("Loading configuration from %s", *configFileFlag)
		yamlFile, err := os.ReadFile(*configFileFlag)
		if err != nil {
			log.Fatalf("Read config file '%s' error: %v", *configFileFlag, err)
		}
		if err := yaml.Unmarshal(yamlFile, &appCfg); err != nil {
			log.Fatalf("Parse config file '%s' error: %v", *configFileFlag, err)
		}
	}
	appWarnings, err := appCfg.Validate()
	for _, w := range appWarnings {
		log.Warn(w)
	}
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	log.Infof("Config: BaseURL:%s, MaxAttempts:%d, AbortOnFirstFailure:%t, Timeout:%v",
		appCfg.BaseURL, appCfg.MaxFetchAttempts, appCfg.EffectiveAbortOnFirstFailure(), appCfg.GlobalCrawlTimeout)

	// --- Load & Validate Crawl Input ---
	if *inputFileFlag == "" {
		log.Fatal("Error: -input flag is required.")
	}
	input, err := config.LoadInput(*inputFileFlag)
	if err != nil {
		log.Fatalf("Invalid crawl input: %v", err)
	}
	log.Infof("Crawl input: %d keywords, %d proxies, type '%s'", len(input.Keywords), len(input.Proxies), input.Type)

	// ===========================================================
	// == Setup Global Context & Signal Handling ==
	// ===========================================================
	var crawlCtx context.Context
	var cancelCrawl context.CancelFunc

	if appCfg.GlobalCrawlTimeout > 0 {
		log.Infof("Setting global crawl timeout: %v", appCfg.GlobalCrawlTimeout)
		crawlCtx, cancelCrawl = context.WithTimeout(context.Background(), appCfg.GlobalCrawlTimeout)
	} else {
		crawlCtx, cancelCrawl = context.WithCancel(context.Background())
	}
	defer cancelCrawl()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Warnf("Received signal: %v. Initiating graceful shutdown...", sig)
		cancelCrawl()

		select {
		case sig = <-sigChan:
			log.Warnf("Received second signal: %v. Forcing exit.", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			log.Warn("Graceful shutdown period exceeded after signal. Forcing exit.")
			os.Exit(1)
		}
	}()
	defer signal.Stop(sigChan)

	// ===========================================================
	// == Initialize Components & Run ==
	// ===========================================================
	pool, err := fetch.NewPool(input.Proxies, nil)
	if err != nil {
		log.Fatalf("Invalid proxy pool: %v", err)
	}
	headers := http.Header{"Accept": []string{"text/html"}}
	fetcher := fetch.NewFetcher(appCfg.HTTPClientSettings, pool, headers, appCfg.MaxFetchAttempts, log)

	crawlerInstance, err := crawler.NewCrawler(&appCfg, input, fetcher, log)
	if err != nil {
		log.Fatalf("Failed to initialize crawler: %v", err)
	}

	records, err := crawlerInstance.Run(crawlCtx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Crawl cancelled gracefully.")
			os.Exit(0)
		} else if errors.Is(err, context.DeadlineExceeded) {
			log.Error("Crawl timed out (global timeout).")
			os.Exit(1)
		}
		log.Errorf("Crawl finished with error: %v", err)
		os.Exit(1)
	}

	// --- Write Results ---
	if err := crawler.WriteResults(*outputFileFlag, records); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}
	log.Infof("Crawl completed successfully. %d records written to %s", len(records), *outputFileFlag)
}
