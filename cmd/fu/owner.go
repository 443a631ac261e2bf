package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/store"
)

func newOwnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Owner directory commands",
	}

	cmd.AddCommand(newOwnerAddCmd())
	cmd.AddCommand(newOwnerListCmd())
	return cmd
}

func newOwnerAddCmd() *cobra.Command {
	var (
		configPath string
		name       string
		email      string
		role       string
		unit       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a person to the owner directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOwnerAdd(cmd, configPath, models.Owner{
				Name: name, Email: email, Role: role, Unit: unit,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	cmd.Flags().StringVar(&name, "name", "", "owner name (required, unique)")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&role, "role", "", "role or title")
	cmd.Flags().StringVar(&unit, "unit", "", "owning unit")
	cmd.MarkFlagRequired("name")
	return cmd
}

func runOwnerAdd(cmd *cobra.Command, configPath string, o models.Owner) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if err := store.New(gormDB).CreateOwner(&o); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added owner %s\n", o.Name)
	return nil
}

func newOwnerListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the owner directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOwnerList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Followup config file")
	return cmd
}

func runOwnerList(cmd *cobra.Command, configPath string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	owners, err := store.New(gormDB).Owners()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(owners) == 0 {
		fmt.Fprintln(out, "No owners yet.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUNIT\tROLE\tEMAIL")
	for _, o := range owners {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.Name, o.Unit, o.Role, o.Email)
	}
	return w.Flush()
}
