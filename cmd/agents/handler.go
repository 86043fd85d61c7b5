package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dumptruck-ai/agents/assistants"
	"github.com/dumptruck-ai/agents/chatmodel"
	"github.com/dumptruck-ai/agents/llmutils"
	"github.com/effective-security/xlog"
	"github.com/gin-gonic/gin"
)

type chatHandler struct {
	agent assistants.IAssistant
}

func newChatHandler(agent assistants.IAssistant) *chatHandler {
	return &chatHandler{agent: agent}
}

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	// ChatID groups messages into one conversation. A new one is
	// created when empty.
	ChatID string `json:"chat_id"`
	Input  string `json:"input" binding:"required"`
}

// ChatResponse is the reply of POST /v1/chat.
type ChatResponse struct {
	ChatID       string `json:"chat_id"`
	Content      string `json:"content"`
	InputTokens  int64  `json:"input_tokens,omitempty"`
	OutputTokens int64  `json:"output_tokens,omitempty"`
}

func (h *chatHandler) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	chatID := req.ChatID
	if chatID == "" {
		chatID = chatmodel.NewChatID()
	}
	ctx := chatmodel.WithChatContext(c.Request.Context(), chatmodel.NewChatContext(chatID))

	resp, err := h.agent.Run(ctx, req.Input)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"agent", h.agent.Name(),
			"chat_id", chatID,
			"err", err.Error(),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	in, out, _ := llmutils.CountTokens(resp)
	c.JSON(http.StatusOK, ChatResponse{
		ChatID:       chatID,
		Content:      resp.Choices[0].Content,
		InputTokens:  in,
		OutputTokens: out,
	})
}

func (h *chatHandler) handleStatus(c *gin.Context) {
	var toolNames []string
	for _, tool := range h.agent.GetTools() {
		toolNames = append(toolNames, tool.Name())
	}
	c.JSON(http.StatusOK, gin.H{
		"agent":       h.agent.Name(),
		"description": h.agent.Description(),
		"tools":       toolNames,
	})
}

func askOnce(agent assistants.IAssistant, question string) error {
	ctx := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext(chatmodel.NewChatID()))
	_, err := agent.Run(ctx, question)
	return err
}

func runConsole(agent assistants.IAssistant) error {
	ctx := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext(chatmodel.NewChatID()))

	fmt.Printf("%s. Type your question, or `exit` to quit.\n", agent.Name())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}
		if _, err := agent.Run(ctx, input); err != nil {
			fmt.Printf("error: %s\n", err.Error())
		}
	}
	return scanner.Err()
}
