package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"baristabox-be/internal/config"
	"baristabox-be/internal/controller"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/repository/implementation"
	"baristabox-be/internal/repository/memory"
	"baristabox-be/internal/repository/unitofwork"
	"baristabox-be/internal/service"
	"baristabox-be/internal/websocket"
	"baristabox-be/pkg/brewer"
	"baristabox-be/pkg/classifier"
	"baristabox-be/pkg/doctor"
	"baristabox-be/pkg/embedding"
	"baristabox-be/pkg/llm"
	"baristabox-be/pkg/llm/factory"
	"baristabox-be/pkg/metrics"
	pktNats "baristabox-be/pkg/nats"
	"baristabox-be/pkg/snapshot"
	"baristabox-be/pkg/sommelier"
	"baristabox-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController
	AdminController   controller.IAdminController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	IndexService    service.IIndexService

	// Expert flows, shared by the REST server, the terminal client and the MCP server
	ChatbotService    service.IChatbotService
	Doctor            *doctor.Engine
	Sommelier         *sommelier.Sommelier
	Brewer            *brewer.Brewer
	ProblemClassifier *classifier.EmbeddingClassifier

	WebSocketHub *websocket.Hub
	Logger       *logger.ZapLogger

	closers []func()
}

// Options tunes what NewContainer wires. The zero value is what the REST
// server uses.
type Options struct {
	// DB enables transcripts and the persistent embedding cache; nil skips both.
	DB *gorm.DB
	// Logger replaces the file logger, e.g. with logger.NewNopLogger() in the REPL.
	Logger *logger.ZapLogger
	// Registerer receives the Prometheus collectors; nil uses the default registry.
	Registerer prometheus.Registerer
}

func NewContainer(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	// 1. Core Facades
	sysLogger := opts.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	}
	c := &Container{Logger: sysLogger}

	knowledge, err := implementation.OpenKnowledgeStore(implementation.KnowledgeFiles{
		BeansPath:           cfg.Knowledge.BeansPath,
		RecipesPath:         cfg.Knowledge.RecipesPath,
		TroubleshootingPath: cfg.Knowledge.TroubleshootingPath,
		TrainingDataPath:    cfg.Knowledge.TrainingDataPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	uowFactory := unitofwork.NewRepositoryFactory(knowledge)

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	recorder := metrics.NewPrometheusRecorder(reg)

	// 2. Model providers
	rawLLM, err := factory.NewLLMProvider(ctx, factory.Settings{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.OllamaBaseURL,
		APIKey:   cfg.Keys.APIKeyFor(cfg.Ai.LLMProvider),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	llmProvider := llm.Chain(rawLLM,
		metrics.InstrumentLLM(recorder, metrics.NewTokenCounter(), cfg.Ai.LLMProvider, cfg.Ai.LLMModel),
		llm.WithTimeout(time.Duration(cfg.Ai.LLMTimeoutSeconds)*time.Second),
	)

	rawEmbedder, err := newEmbeddingProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}
	var embeddingCache embedding.Cache = memory.NewEmbeddingCache()
	if opts.DB != nil {
		embeddingCache = service.NewEmbeddingCacheService(implementation.NewBeanEmbeddingRepository(opts.DB))
	}
	embedder := embedding.NewCachedProvider(metrics.InstrumentEmbedding(recorder, rawEmbedder), embeddingCache)

	// 3. Sessions
	ttl := time.Duration(cfg.App.SessionTTLMinutes) * time.Minute
	var rdb *redis.Client
	var sessions store.Repository
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessions = memory.NewRedisSessionRepository(rdb, ttl)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	} else {
		sessions = memory.NewSessionRepository(ttl)
	}

	var transcript service.ITranscriptService
	if opts.DB != nil {
		transcript = service.NewTranscriptService(
			implementation.NewChatSessionRepository(opts.DB),
			implementation.NewChatMessageRepository(opts.DB),
		)
	}

	// 4. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var remotePub service.EventPublisher
	var remoteSub service.EventSubscriber
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			remotePub = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			remoteSub = natsSub
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 5. Expert flows and indexes
	c.Doctor = doctor.NewEngine(uowFactory, llmProvider, sysLogger)
	c.Sommelier = sommelier.NewSommelier(uowFactory, embedder, llmProvider, sysLogger)
	c.Brewer = brewer.NewBrewer(uowFactory, llmProvider, sysLogger)

	c.ProblemClassifier = classifier.NewEmbeddingClassifier(embedder, cfg.Ai.NeighbourCount)

	var intents classifier.Classifier
	var intentIndex service.TrainableClassifier
	if cfg.Ai.IntentClassifier == "llm" {
		intents = classifier.NewLLMClassifier(llmProvider, classifier.IntentLabels, classifier.IntentUnknown).
			Describe(classifier.IntentTroubleshooting, "the user has a problem with a coffee they brewed").
			Describe(classifier.IntentRecommendation, "the user wants a bean suggestion").
			Describe(classifier.IntentRecipe, "the user asks how to brew a specific bean with a specific method").
			Describe(classifier.IntentUnknown, "anything else")
	} else {
		intentClassifier := classifier.NewEmbeddingClassifier(embedder, cfg.Ai.NeighbourCount)
		intents = intentClassifier
		intentIndex = intentClassifier
	}

	c.IndexService = service.NewIndexService(
		uowFactory,
		c.Sommelier,
		intentIndex,
		c.ProblemClassifier,
		cfg.Knowledge.IntentExamplesPath,
		sysLogger,
	)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.KnowledgeTopic, pubSub)
	knowledgeEvents := service.NewKnowledgeEventService(publisherService, remotePub, sysLogger)

	hostname, _ := os.Hostname()
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Keys.KnowledgeTopic,
		remoteSub,
		"baristabox-index-"+hostname,
		c.IndexService,
		sysLogger,
	)

	var snapshots service.Snapshotter
	if cfg.Snapshot.Bucket != "" {
		uploader, err := snapshot.New(ctx, snapshot.Config{
			Bucket:    cfg.Snapshot.Bucket,
			Prefix:    cfg.Snapshot.Prefix,
			Region:    cfg.Snapshot.Region,
			Endpoint:  cfg.Snapshot.Endpoint,
			AccessKey: cfg.Snapshot.AccessKey,
			SecretKey: cfg.Snapshot.SecretKey,
		})
		if err != nil {
			log.Printf("[WARN] Knowledge snapshots disabled: %v", err)
		} else {
			snapshots = uploader
		}
	}

	adminService := service.NewAdminService(
		uowFactory,
		knowledgeEvents,
		c.IndexService,
		snapshots,
		transcript,
		knowledge.Files().Paths(),
		sysLogger,
		cfg.Admin,
		sysLogger,
	)

	c.ChatbotService = service.NewChatbotService(sessions, service.ChatFlows{
		Intents:   intents,
		Problems:  c.ProblemClassifier,
		Doctor:    c.Doctor,
		Sommelier: c.Sommelier,
		Brewer:    c.Brewer,
	}, transcript, recorder, sysLogger)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	// 7. Controllers
	c.ChatbotController = controller.NewChatbotController(c.ChatbotService, c.WebSocketHub)
	c.AdminController = controller.NewAdminController(adminService, cfg.Admin.JwtSecret)
	c.HealthController = controller.NewHealthController(c.IndexService)

	return c, nil
}

func newEmbeddingProvider(ctx context.Context, cfg *config.Config) (embedding.EmbeddingProvider, error) {
	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		if cfg.Keys.GoogleGemini == "" {
			return nil, fmt.Errorf("gemini embeddings require an API key")
		}
		return embedding.NewGeminiProvider(ctx, cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel)
	case "ollama":
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	case "openai":
		if cfg.Keys.OpenAI == "" {
			return nil, fmt.Errorf("openai embeddings require an API key")
		}
		return embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Ai.EmbeddingProvider)
	}
}

// Close releases broker and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
