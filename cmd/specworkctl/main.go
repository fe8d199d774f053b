// Command specworkctl is a small CLI over the SpecWork marketplace API,
// mainly useful for poking at a backend during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/specwork/specwork-go/client"
	"github.com/specwork/specwork-go/internal/config"
	"github.com/specwork/specwork-go/pkg/logger"
	"github.com/specwork/specwork-go/realtime"
	"github.com/specwork/specwork-go/tokenstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	tokenPath := cfg.TokenPath
	if tokenPath == "" {
		tokenPath, err = tokenstore.DefaultPath()
		if err != nil {
			return err
		}
	}
	tokens := tokenstore.NewFileStore(tokenPath)

	api, err := client.New(client.Config{
		BaseURL: cfg.APIURL,
		Tokens:  tokens,
		Logger:  &log,
	})
	if err != nil {
		return err
	}

	if len(os.Args) < 2 {
		usage()
		return fmt.Errorf("a command is required")
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		return cmdLogin(ctx, api)
	case "logout":
		return api.Logout(ctx)
	case "orders":
		return cmdOrders(ctx, api)
	case "order":
		return cmdOrder(ctx, api)
	case "stats":
		return cmdStats(ctx, api)
	case "watch":
		return cmdWatch(cfg, api, tokens)
	default:
		usage()
		return fmt.Errorf("unknown command %q", os.Args[1])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: specworkctl <command> [flags]

commands:
  login    -email -password   authenticate and store the token
  logout                      clear the stored token
  orders   [-city] [-q]       list open orders
  order    -id                show a single order
  stats                       show platform statistics
  watch    [-conversation]    stream realtime events`)
}

func cmdLogin(ctx context.Context, api *client.Client) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(os.Args[2:])

	if *email == "" || *password == "" {
		return fmt.Errorf("-email and -password are required")
	}

	session, err := api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if session.User != nil {
		fmt.Printf("logged in as %s (id %d)\n", session.User.Name, session.User.ID)
	} else {
		fmt.Println("logged in")
	}
	return nil
}

func cmdOrders(ctx context.Context, api *client.Client) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	city := fs.String("city", "", "filter by city")
	search := fs.String("q", "", "search query")
	fs.Parse(os.Args[2:])

	list, err := api.ListOrders(ctx, client.ListOrdersOptions{
		City:   *city,
		Search: *search,
		Status: client.OrderStatusOpen,
	})
	if err != nil {
		return err
	}

	for _, order := range list.Items {
		budget := "-"
		if order.Budget != nil {
			budget = fmt.Sprintf("%d", *order.Budget)
		}
		fmt.Printf("%6d  %-40s  %-12s  %s\n", order.ID, order.Title, order.Status, budget)
	}
	fmt.Printf("%d of %d orders\n", len(list.Items), list.Meta.Total)
	return nil
}

func cmdOrder(ctx context.Context, api *client.Client) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	id := fs.Int64("id", 0, "order ID")
	fs.Parse(os.Args[2:])

	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	order, err := api.GetOrder(ctx, *id)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func cmdStats(ctx context.Context, api *client.Client) error {
	stats, err := api.GetPlatformStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("specialists: %d\norders completed: %d\nmarkets: %d\ncategories: %d\n",
		stats.Specialists, stats.OrdersCompleted, stats.Markets, stats.Categories)
	return nil
}

func cmdWatch(cfg *config.Config, api *client.Client, tokens tokenstore.Store) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	conversationID := fs.Int64("conversation", 0, "also watch a conversation channel")
	fs.Parse(os.Args[2:])

	token, err := tokens.Token()
	if err != nil {
		return fmt.Errorf("watch requires a stored token: %w", err)
	}
	if expired, err := tokenstore.Expired(token); err == nil && expired {
		fmt.Fprintln(os.Stderr, "warning: stored token looks expired")
	}

	ctx := context.Background()
	me, err := api.Me(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	manager, err := realtime.New(realtime.Config{
		URL:    cfg.WSURL,
		Token:  token,
		Logger: &log,
	})
	if err != nil {
		return err
	}
	if err := manager.Connect(ctx); err != nil {
		return err
	}
	defer manager.Close()

	printEvent := func(event realtime.Event) {
		fmt.Printf("[%s] %s %s\n", event.Channel, event.Name, string(event.Data))
	}

	userCh, err := manager.Subscribe(realtime.UserChannel(me.ID))
	if err != nil {
		return err
	}
	for _, name := range []string{
		realtime.EventNotificationCreated,
		realtime.EventOrderStatusUpdated,
		realtime.EventBookingCreated,
		realtime.EventBookingUpdated,
		realtime.EventBookingCancelled,
	} {
		userCh.Bind(name, printEvent)
	}

	if *conversationID > 0 {
		convCh, err := manager.Subscribe(realtime.ConversationChannel(*conversationID))
		if err != nil {
			return err
		}
		convCh.Bind(realtime.EventNewMessage, printEvent)
		convCh.Bind(realtime.EventConversationStatusUpdated, printEvent)
	}

	fmt.Println("watching, ctrl-c to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
