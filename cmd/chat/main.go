// Command chat talks to BaristaBox from the terminal, in process.
//
// Type a message and press enter. /reset starts a new conversation and
// /quit (or EOF) leaves.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"baristabox-be/internal/bootstrap"
	"baristabox-be/internal/config"
	"baristabox-be/internal/dto"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/service"
	"baristabox-be/pkg/store"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	container, err := bootstrap.NewContainer(ctx, cfg, bootstrap.Options{Logger: logger.NewNopLogger()})
	if err != nil {
		log.Fatalf("Unable to bootstrap: %v", err)
	}
	defer container.Close()

	color.Cyan("☕ Warming up the flavor map...")
	if _, err := container.IndexService.Rebuild(ctx); err != nil {
		log.Fatalf("Unable to build indexes: %v", err)
	}

	chat := container.ChatbotService
	sessionId, err := newSession(ctx, chat)
	if err != nil {
		log.Fatalf("Unable to start a session: %v", err)
	}

	prompt := color.New(color.FgYellow, color.Bold)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("\nyou> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		text := strings.TrimSpace(scanner.Text())

		switch text {
		case "":
			continue
		case "/quit", "/exit":
			return
		case "/reset":
			_ = chat.DeleteSession(ctx, sessionId)
			if sessionId, err = newSession(ctx, chat); err != nil {
				color.Red("Failed: %v", err)
				return
			}
			continue
		}

		res, err := chat.SendChat(ctx, &dto.SendChatRequest{ChatSessionId: sessionId, Chat: text})
		if err != nil {
			color.Red("Failed: %v", err)
			continue
		}
		printReply(res.Reply, res.Mode)
	}
}

func newSession(ctx context.Context, chat service.IChatbotService) (string, error) {
	sess, err := chat.CreateSession(ctx)
	if err != nil {
		return "", err
	}
	printReply(sess.Greeting, sess.Mode)
	return sess.Id, nil
}

func printReply(reply *dto.SendChatResponseChat, mode string) {
	label := "barista"
	if mode == store.ModeDoctorChat {
		label = "doctor"
	}
	color.New(color.FgGreen, color.Bold).Printf("%s> ", label)
	fmt.Println(reply.Chat)
}
