// Package app wires application services with infrastructure adapters.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kunalverma/axon-go/internal/domain"
	"github.com/kunalverma/axon-go/internal/infrastructure/ai"
	"github.com/kunalverma/axon-go/internal/infrastructure/config"
	"github.com/kunalverma/axon-go/internal/infrastructure/embedding"
	"github.com/kunalverma/axon-go/internal/infrastructure/executor"
	"github.com/kunalverma/axon-go/internal/infrastructure/history"
	"github.com/kunalverma/axon-go/internal/infrastructure/ingest"
	"github.com/kunalverma/axon-go/internal/infrastructure/knowledge"
	"github.com/kunalverma/axon-go/internal/infrastructure/security"
	"github.com/kunalverma/axon-go/internal/pkg/logger"
	"github.com/kunalverma/axon-go/internal/ports"
	"github.com/kunalverma/axon-go/internal/services"
)

// Container wires up application services with infrastructure adapters.
// Server pieces (Assistant, Store, Ingestor) and client pieces (Guardrail,
// Executor, History) live side by side; commands pick what they need.
type Container struct {
	Config         domain.Config
	ConfigLoader   *config.FileLoader
	Logger         *logger.ZapLogger
	Assistant      *services.Dispatcher
	KnowledgeStore *knowledge.Store
	Ingestor       *ingest.Ingestor
	Guardrail      ports.SecurityService
	Executor       ports.CommandExecutor
	HistoryStore   ports.HistoryRepository
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)

	timeout := time.Duration(cfg.Preferences.TimeoutSeconds) * time.Second
	factory := ai.NewFactory(timeout)

	general, err := gatewayFor(factory, cfg, cfg.Preferences.GeneralModel)
	if err != nil {
		return nil, err
	}
	stepBack, err := gatewayFor(factory, cfg, cfg.Preferences.StepBackModel)
	if err != nil {
		return nil, err
	}
	answerer, err := gatewayFor(factory, cfg, cfg.Preferences.AnswerModel)
	if err != nil {
		return nil, err
	}
	// A missing tool-capable model disables the action lane; the other
	// lanes still serve.
	var toolGateway ports.ToolGateway
	toolsModel, err := modelByName(cfg, cfg.Preferences.ToolsModel)
	if err == nil {
		toolGateway, err = factory.ToolGatewayForModel(toolsModel)
	}
	if err != nil {
		log.Warn("action lane unavailable", map[string]interface{}{"error": err.Error()})
		toolGateway = ai.NewUnavailableToolGateway(err)
	}

	embedder, err := embedding.ForSettings(ctx, cfg.Embedding, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	store, err := knowledge.NewStore(cfg.Retrieval.IndexPath, embedder)
	if err != nil {
		return nil, err
	}

	toolSet := services.NewToolSet(cfg.Actions, nil)
	assistant := &services.Dispatcher{
		Router: services.NewRouter(cfg.Router),
		Pipeline: &services.RetrievalPipeline{
			StepBack: stepBack,
			Answerer: answerer,
			Store:    store,
			K:        cfg.Retrieval.K,
			Logger:   log,
		},
		Negotiator: &services.Negotiator{
			Gateway: toolGateway,
			Tools:   toolSet,
			Logger:  log,
		},
		General: general,
		Logger:  log,
	}

	guardrail, err := security.NewGuardrail(cfg.Security.RulesFile)
	if err != nil {
		return nil, err
	}

	var historyStore ports.HistoryRepository
	if cfg.History.Enabled {
		historyStore, err = history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, err
		}
	}

	return &Container{
		Config:         cfg,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Assistant:      assistant,
		KnowledgeStore: store,
		Ingestor: &ingest.Ingestor{
			Writer:   store,
			Splitter: ingest.NewSplitter(cfg.Retrieval.ChunkSize, cfg.Retrieval.Overlap),
			Logger:   log,
		},
		Guardrail:    guardrail,
		Executor:     executor.NewLocalExecutor(""),
		HistoryStore: historyStore,
	}, nil
}

// Close releases the container's persistent resources.
func (c *Container) Close() {
	if c.KnowledgeStore != nil {
		c.KnowledgeStore.Close()
	}
	if closer, ok := c.HistoryStore.(interface{ Close() error }); ok {
		closer.Close()
	}
	if c.Logger != nil {
		c.Logger.Sync()
	}
}

func gatewayFor(factory *ai.Factory, cfg domain.Config, name string) (ports.Gateway, error) {
	model, err := modelByName(cfg, name)
	if err != nil {
		return nil, err
	}
	return factory.ForModel(model)
}

func modelByName(cfg domain.Config, name string) (domain.ModelDefinition, error) {
	for _, model := range cfg.Models {
		if model.Name == name {
			return model, nil
		}
	}
	return domain.ModelDefinition{}, fmt.Errorf("model %q not found in configuration", name)
}
