package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/matst80/slask-layer/pkg/catalog"
	"github.com/matst80/slask-layer/pkg/config"
	"github.com/matst80/slask-layer/pkg/facet"
	"github.com/matst80/slask-layer/pkg/messaging"
	"github.com/matst80/slask-layer/pkg/types"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the filter type of every filterable attribute",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := loadStore()
		if err != nil {
			return err
		}
		defer closeStore()

		provider, err := loadAttributes()
		if err != nil {
			return err
		}
		attrs, err := provider.Filterable(cmd.Context())
		if err != nil {
			return err
		}

		engine := config.EngineConfigFromStore(store)
		fmt.Printf("engine active: %t hosts: %v index: %s\n", config.NewGate(store).IsActive(), engine.Hosts, engine.Index)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILTER\tTYPE\tSOURCE MODEL\tBACKEND")
		fmt.Fprintf(w, "%s\t%s\t\t\n", types.CategoryFilterName, types.CategoryFilter)
		for _, attr := range attrs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", attr.FilterName(), facet.Resolve(attr), attr.SourceModel, attr.BackendType)
		}
		return w.Flush()
	},
}

var publishAction string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Send the attributes as changes on the attribute change topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rabbitUrl == "" {
			return fmt.Errorf("rabbit url is required")
		}
		provider, err := loadAttributes()
		if err != nil {
			return err
		}
		attrs, err := provider.Filterable(cmd.Context())
		if err != nil {
			return err
		}
		changes := make([]catalog.AttributeChange, 0, len(attrs))
		for _, attr := range attrs {
			changes = append(changes, catalog.AttributeChange{
				Action:    catalog.ChangeAction(publishAction),
				Attribute: attr,
			})
		}

		conn, err := messaging.Connect(messaging.RabbitConfig{Url: rabbitUrl, VHost: rabbitVHost, Prefix: topicPrefix})
		if err != nil {
			return err
		}
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			return err
		}
		defer ch.Close()
		if err := messaging.DefineTopic(ch, topicPrefix, messaging.AttributesChanged); err != nil {
			return err
		}
		if err := messaging.SendAttributeChanges(conn, topicPrefix, changes); err != nil {
			return err
		}
		fmt.Printf("published %d attribute changes\n", len(changes))
		return nil
	},
}

func init() {
	publishCmd.Flags().StringVar(&rabbitUrl, "rabbit", os.Getenv("RABBIT_URL"),
		"RabbitMQ url")
	publishCmd.Flags().StringVar(&rabbitVHost, "rabbit-vhost", os.Getenv("RABBIT_VHOST"),
		"RabbitMQ virtual host")
	publishCmd.Flags().StringVar(&topicPrefix, "topic-prefix", os.Getenv("COUNTRY"),
		"Prefix of the message topics")
	publishCmd.Flags().StringVar(&publishAction, "action", string(catalog.AddAttribute),
		"Change action: add, update or remove")
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(publishCmd)
}
