package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/matst80/slask-layer/pkg/catalog"
	"github.com/matst80/slask-layer/pkg/common"
	"github.com/matst80/slask-layer/pkg/config"
	"github.com/matst80/slask-layer/pkg/facet"
	"github.com/matst80/slask-layer/pkg/messaging"
	"github.com/matst80/slask-layer/pkg/search/elastic"
	"github.com/matst80/slask-layer/pkg/server"
	"github.com/matst80/slask-layer/pkg/session"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	listenAddress   string
	refreshSchedule string
	rabbitUrl       string
	rabbitVHost     string
	topicPrefix     string
	stateTTL        time.Duration
	templates       map[string]string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the layer HTTP service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddress, "listen", ":8080",
		"HTTP listen address")
	serveCmd.Flags().StringVar(&refreshSchedule, "refresh", "@every 5m",
		"Cron schedule for reloading the attributes")
	serveCmd.Flags().StringVar(&rabbitUrl, "rabbit", os.Getenv("RABBIT_URL"),
		"RabbitMQ url for attribute change messages")
	serveCmd.Flags().StringVar(&rabbitVHost, "rabbit-vhost", os.Getenv("RABBIT_VHOST"),
		"RabbitMQ virtual host")
	serveCmd.Flags().StringVar(&topicPrefix, "topic-prefix", os.Getenv("COUNTRY"),
		"Prefix of the message topics")
	serveCmd.Flags().DurationVar(&stateTTL, "state-ttl", 30*time.Minute,
		"How long the navigation state of a session is kept")
	serveCmd.Flags().StringToStringVar(&templates, "template", nil,
		"Template override per filter, for example price=layer/price.html")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	store, closeStore, err := loadStore()
	if err != nil {
		return err
	}
	defer closeStore()

	source, err := loadAttributes()
	if err != nil {
		return err
	}
	attributes := catalog.NewCache(source)
	if err := attributes.Refresh(cmd.Context()); err != nil {
		log.Printf("initial attribute load failed: %v", err)
	}
	if err := attributes.StartRefresh(refreshSchedule); err != nil {
		return err
	}

	registry := facet.NewTemplateRegistry()
	for name, template := range templates {
		registry.Register(name, template)
	}

	var states session.StateStore = session.NewMemoryStateStore()
	var hooks []common.ShutdownHook
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPassword,
		})
		states = session.NewRedisStateStore(rdb, stateTTL)
		hooks = append(hooks, func(ctx context.Context) error {
			return rdb.Close()
		})
	}

	if rabbitUrl != "" {
		conn, err := messaging.Connect(messaging.RabbitConfig{Url: rabbitUrl, VHost: rabbitVHost, Prefix: topicPrefix})
		if err != nil {
			return err
		}
		queue, err := messaging.ListenForAttributeChanges(conn, topicPrefix, attributes)
		if err != nil {
			conn.Close()
			return err
		}
		hooks = append(hooks, func(ctx context.Context) error {
			queue.Close()
			return conn.Close()
		})
	}
	hooks = append(hooks, func(ctx context.Context) error {
		attributes.Stop()
		return nil
	})

	gate := config.NewGate(store)
	ws := &server.LayerServer{
		Pipeline: &facet.Pipeline{
			Config:     store,
			Gate:       gate,
			Attributes: attributes,
			Backends:   elastic.NewPool(elastic.DefaultFields),
			Templates:  registry,
		},
		States:     states,
		Attributes: attributes,
		Gate:       gate,
	}

	timeouts := common.LoadTimeoutConfig(common.DefaultTimeoutConfig(), store.String)
	srv := common.NewServerWithTimeouts(listenAddress, ws.Handle(), timeouts)
	return common.RunServerWithShutdown(cmd.Context(), srv, "layer server", timeouts, hooks...)
}
