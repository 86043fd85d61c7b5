// Command agents runs a tool-calling agent over the Last.fm, Spotify
// and Clash of Clans APIs, either as an interactive console or as an
// HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dumptruck-ai/agents/agents"
	"github.com/dumptruck-ai/agents/assistants"
	"github.com/dumptruck-ai/agents/llmfactory"
	"github.com/dumptruck-ai/agents/store"
	"github.com/effective-security/xlog"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var logger = xlog.NewPackageLogger("github.com/dumptruck-ai/agents", "cmd")

func main() {
	var (
		envFile   = flag.String("env", ".env", "path to the .env file with API credentials, optional")
		cfgFile   = flag.String("cfg", "", "path to the LLM providers configuration file")
		agentName = flag.String("agent", agents.AgentMusic, "agent to run: music or clash")
		model     = flag.String("model", "", "preferred model name, optional")
		redisAddr = flag.String("redis", "", "Redis address for chat history, in-memory when empty")
		listen    = flag.String("listen", "", "HTTP listen address, console mode when empty")
		question  = flag.String("q", "", "ask a single question and exit")
	)
	flag.Parse()

	if err := run(*envFile, *cfgFile, *agentName, *model, *redisAddr, *listen, *question); err != nil {
		fmt.Fprintf(os.Stderr, "agents: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(envFile, cfgFile, agentName, model, redisAddr, listen, question string) error {
	// missing .env is fine, credentials may come from the environment
	if err := godotenv.Load(envFile); err == nil {
		logger.KV(xlog.DEBUG, "status", "loaded_env", "file", envFile)
	}

	f, err := llmfactory.Load(cfgFile)
	if err != nil {
		return err
	}
	var preferred []string
	if model != "" {
		preferred = append(preferred, model)
	}
	llmModel, err := f.AssistantModel(agentName, preferred...)
	if err != nil {
		return err
	}

	messageStore := store.NewMemoryStore()
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return err
		}
		messageStore = store.NewRedisStore(rdb, "agents")
	}

	opts := []assistants.Option{
		assistants.WithStore(messageStore),
	}
	if listen == "" {
		opts = append(opts, assistants.WithCallback(assistants.NewPrinterCallback(os.Stdout)))
	}

	agent, err := agents.New(strings.ToLower(agentName), llmModel, opts...)
	if err != nil {
		return err
	}

	logger.KV(xlog.INFO,
		"status", "starting",
		"agent", agent.Name(),
		"model", llmModel.GetName(),
		"tools", len(agent.GetTools()),
	)

	if listen != "" {
		return serveHTTP(listen, agent)
	}
	if question != "" {
		return askOnce(agent, question)
	}
	return runConsole(agent)
}

func serveHTTP(listen string, agent assistants.IAssistant) error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	h := newChatHandler(agent)
	v1 := engine.Group("/v1")
	{
		v1.POST("/chat", h.handleChat)
		v1.GET("/status", h.handleStatus)
	}

	srv := &http.Server{
		Addr:              listen,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.KV(xlog.INFO, "status", "listening", "addr", listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.KV(xlog.INFO, "status", "shutting_down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
