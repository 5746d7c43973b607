package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowatlas-labs/flowatlas-cli/internal/core/domain"
	"github.com/flowatlas-labs/flowatlas-cli/internal/core/ports/driving"
)

var (
	flowsSource string
	flowsTarget string
	flowsFormat string
	flowsMethod string
	flowsJSON   bool
)

var flowsCmd = &cobra.Command{
	Use:   "flows",
	Short: "Browse indexed data flows",
}

var flowsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List data flows, optionally filtered",
	RunE:  runFlowsList,
}

var flowsShowCmd = &cobra.Command{
	Use:   "show [flow-id]",
	Short: "Show one data flow in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlowsShow,
}

func init() {
	flowsListCmd.Flags().StringVar(&flowsSource, "source", "", "filter by source system name")
	flowsListCmd.Flags().StringVar(&flowsTarget, "target", "", "filter by target system name")
	flowsListCmd.Flags().StringVar(&flowsFormat, "format", "", "filter by data format name")
	flowsListCmd.Flags().StringVar(&flowsMethod, "method", "", "filter by transmission method name")
	flowsListCmd.Flags().BoolVar(&flowsJSON, "json", false, "output as JSON")
	flowsShowCmd.Flags().BoolVar(&flowsJSON, "json", false, "output as JSON")
	flowsCmd.AddCommand(flowsListCmd)
	flowsCmd.AddCommand(flowsShowCmd)
	rootCmd.AddCommand(flowsCmd)
}

func runFlowsList(cmd *cobra.Command, _ []string) error {
	if err := ensureIndex(cmd); err != nil {
		return err
	}

	flows, err := catalogService.ListFlows(cmd.Context(), driving.FlowFilter{
		SourceSystem: flowsSource,
		TargetSystem: flowsTarget,
		Format:       flowsFormat,
		Method:       flowsMethod,
	})
	if err != nil {
		return fmt.Errorf("listing flows: %w", err)
	}

	if flowsJSON {
		data, err := json.MarshalIndent(flows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal flows: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(flows) == 0 {
		cmd.Println("No data flows found.")
		return nil
	}

	for i := range flows {
		cmd.Printf("  %s  %s\n", flows[i].ID, flows[i].Name)
	}
	cmd.Printf("\n%d flow(s)\n", len(flows))
	return nil
}

func runFlowsShow(cmd *cobra.Command, args []string) error {
	if err := ensureIndex(cmd); err != nil {
		return err
	}

	flow, err := catalogService.GetFlow(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("data flow %q not found", args[0])
		}
		return err
	}

	if flowsJSON {
		data, err := json.MarshalIndent(flow, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal flow: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printFlow(cmd, flow)
	return nil
}

func printFlow(cmd *cobra.Command, flow *domain.DataFlow) {
	cmd.Printf("%s (%s)\n", flow.Name, flow.ID)
	if flow.Description != "" {
		cmd.Printf("  %s\n", flow.Description)
	}
	if flow.Trigger != "" {
		cmd.Printf("  Trigger:   %s\n", flow.Trigger)
	}
	cmd.Printf("  Source:    %s\n", flow.SourceID)
	cmd.Printf("  Target:    %s\n", flow.TargetID)
	if flow.FormatID != "" {
		cmd.Printf("  Format:    %s\n", flow.FormatID)
	}
	for _, id := range flow.MethodIDs {
		cmd.Printf("  Method:    %s\n", id)
	}
	if flow.InterfaceID != "" {
		cmd.Printf("  Interface: %s\n", flow.InterfaceID)
	}
	for i, step := range flow.Steps {
		cmd.Printf("  Step %d:    %s", i+1, step.Label)
		if step.Actor != "" {
			cmd.Printf(" (%s)", step.Actor)
		}
		cmd.Println()
	}
}
