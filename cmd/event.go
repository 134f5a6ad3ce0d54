package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/core/events"
	"github.com/lawateaditya/Stock-Management/internal/ledger"
	"github.com/lawateaditya/Stock-Management/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus maintenance commands",
}

var (
	eventItemCode string
	eventQty      float64
)

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Run the ledger event handlers against a sample event",
	Long: `Build a sample ledger event of the given type and dispatch it through
the registered audit and metrics handlers, synchronously. Checks handler
wiring and log output without touching the database.

Event types: ` + strings.Join(ledgerEventTypes, ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: ledgerEventTypes,
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(args[0])
	},
}

var ledgerEventTypes = []string{
	events.EventTypeInwardRecorded,
	events.EventTypeInwardDeleted,
	events.EventTypeIssueRecorded,
	events.EventTypeIssueDeleted,
	events.EventTypeIssueRejected,
}

func publishSampleEvent(eventType string) error {
	lg := logger.LoggerWrapper()

	bus := events.NewEventBus(lg)
	ledger.NewEventHandler(lg).RegisterEventHandlers(bus)

	var event events.Event
	switch eventType {
	case events.EventTypeInwardRecorded:
		event = events.NewInwardRecordedEvent(internal.NewID("inward"), eventItemCode, eventQty, eventQty*10, "cli")
	case events.EventTypeInwardDeleted:
		event = events.NewInwardDeletedEvent(internal.NewID("inward"), eventItemCode, 2, "cli")
	case events.EventTypeIssueRecorded:
		event = events.NewIssueRecordedEvent(internal.NewID("issue"), eventItemCode, eventQty, "cli")
	case events.EventTypeIssueDeleted:
		event = events.NewIssueDeletedEvent(internal.NewID("issue"), eventItemCode, "cli")
	case events.EventTypeIssueRejected:
		event = events.NewIssueRejectedEvent(eventItemCode, eventQty, eventQty/2, "cli")
	default:
		return fmt.Errorf("unknown event type %q, expected one of %v", eventType, ledgerEventTypes)
	}

	if err := bus.PublishSync(context.Background(), event); err != nil {
		return err
	}

	lg.Info("sample event dispatched", "event_type", eventType, "event_id", event.EventID())
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventItemCode, "item", "ITM-001", "item code for the sample payload")
	publishEventCmd.Flags().Float64Var(&eventQty, "qty", 10, "quantity for the sample payload")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
