package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/F3NN3X/vbz-departures-service/dlog"
	"github.com/F3NN3X/vbz-departures-service/model"
	"github.com/F3NN3X/vbz-departures-service/presenter"
	"github.com/F3NN3X/vbz-departures-service/publisher"
	"github.com/F3NN3X/vbz-departures-service/repository"
	vbz_client "github.com/F3NN3X/vbz-departures-service/vbz-client"
	vbz_poller "github.com/F3NN3X/vbz-departures-service/vbz-poller"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/gomodule/redigo/redis"
)

const defaultVbzURL = "https://api.opentransportdata.swiss/trias2020"

func main() {
	loggerOptions := []dlog.LoggerOption{
		dlog.LoggerSetOutput(os.Stderr),
		dlog.LoggerSetPrefix("vbz-monitor: "),
		dlog.LoggerSetFlags(log.Ldate | log.Ltime | log.Lmicroseconds),
	}

	if os.Getenv("VBZ_DEBUG") != "" {
		loggerOptions = append(loggerOptions, dlog.LoggerEnableDebug())
	}
	if os.Getenv("VBZ_VERBOSE") != "" {
		loggerOptions = append(loggerOptions, dlog.LoggerEnableVerbose())
	}

	logger := dlog.NewLogger(loggerOptions...)

	logger.Debugf("main")

	vbzURL := envOrDefault("VBZ_API_URL", defaultVbzURL)

	// A missing or implausible key is a configuration problem, not a fatal
	// one: polling is still attempted and each rejection surfaces as an
	// error snapshot.
	vbzAPIKey := os.Getenv("VBZ_API_KEY")
	if !vbz_client.PlausibleAPIKey(vbzAPIKey) {
		logger.Warnf("VBZ_API_KEY is missing or implausibly short; requests will likely be rejected")
	}

	stopPointRef, exists := os.LookupEnv("VBZ_STOP_ID")
	if !exists || stopPointRef == "" {
		logger.Fatal("VBZ_STOP_ID not set in environment")
	}

	numberOfResults := envIntOrDefault(logger, "VBZ_NUMBER_OF_RESULTS", 6)
	if numberOfResults <= 0 {
		logger.Fatal("VBZ_NUMBER_OF_RESULTS must be greater than 0")
	}

	pollIntervalMs := envIntOrDefault(logger, "VBZ_POLL_INTERVAL_MS", 30000)
	if pollIntervalMs <= 0 {
		logger.Fatal("VBZ_POLL_INTERVAL_MS must be greater than 0")
	}

	timeoutMs := envIntOrDefault(logger, "VBZ_HTTP_TIMEOUT_MS", 30000)
	if timeoutMs <= 0 {
		logger.Fatal("VBZ_HTTP_TIMEOUT_MS must be greater than 0")
	}

	requestorRef := envOrDefault("VBZ_REQUESTOR_REF", "vbz-departures-service")

	client := &vbz_client.VbzClient{
		Client: &http.Client{
			Timeout: time.Duration(timeoutMs) * time.Millisecond,
		},
		Logger:    logger,
		VbzURL:    vbzURL,
		VbzAPIKey: vbzAPIKey,
	}

	interval := time.Duration(pollIntervalMs) * time.Millisecond

	var store *repository.SnapshotStore
	if redisHost := os.Getenv("DEPARTURES_REDIS_HOST"); redisHost != "" {
		pool := repository.NewRedisPool([]repository.RedisPoolOption{
			repository.RedisPoolDial(func() (redis.Conn, error) {
				return redis.Dial("tcp", redisHost)
			}),
		}...)
		defer func() {
			logger.Debugf("close Redis pool")
			if err := pool.Close(); err != nil {
				logger.Errorf("failed to close Redis pool: %s", err)
			}
		}()
		store = &repository.SnapshotStore{
			Logger: logger,
			Pool:   pool,
			TTL:    2 * interval,
		}
	}

	var snsPublisher *publisher.SNSPublisher
	if snsTopicARN := os.Getenv("AWS_SNS_TOPIC_ARN"); snsTopicARN != "" {
		sess := session.Must(session.NewSession())
		snsPublisher = &publisher.SNSPublisher{
			Logger:      logger,
			SNSClient:   sns.New(sess),
			SNSTopicARN: &snsTopicARN,
		}
	}

	poller := &vbz_poller.VbzPoller{
		Logger:          logger,
		Client:          client,
		Presenter:       &presenter.Presenter{Logger: logger},
		StopPointRef:    stopPointRef,
		NumberOfResults: numberOfResults,
		RequestorRef:    requestorRef,
		Interval:        interval,
		Subscriber: func(snapshot model.Snapshot) {
			if snapshot.HasError {
				logger.Errorf("poll failed: %s", snapshot.ErrorMessage)
			} else {
				logger.Infof("%s: %d departures", snapshot.StationName, len(snapshot.Departures))
			}
			if store != nil {
				if err := store.Save(snapshot); err != nil {
					logger.Errorf("cannot store snapshot: %s", err)
				}
			}
			if snsPublisher != nil {
				if err := snsPublisher.Publish(snapshot); err != nil {
					logger.Errorf("cannot publish snapshot: %s", err)
				}
			}
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller.Start(ctx)
	<-ctx.Done()
	poller.Stop()
}

func envOrDefault(key, fallback string) string {
	if v, exists := os.LookupEnv(key); exists && v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(logger *dlog.StdLogger, key string, fallback int) int {
	v, exists := os.LookupEnv(key)
	if !exists || v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Fatalf("%s value `%s` is not valid", key, v)
	}

	return n
}
