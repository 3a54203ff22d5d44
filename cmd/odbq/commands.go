package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/preceeder/go.db.odb"
	"github.com/preceeder/go.db.odb/builder"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type app struct {
	configPath string
	verbose    bool
	// 测试时替换
	options []odb.Option
}

func newRootCmd(opts ...odb.Option) *cobra.Command {
	a := &app{options: opts}
	root := &cobra.Command{
		Use:           "odbq",
		Short:         "Run simple CRUD statements against an ODBC database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config file (yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every statement")

	root.AddCommand(
		a.selectCmd(),
		a.insertCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.existsCmd(),
		a.databasesCmd(),
		a.createDBCmd(),
		a.dropDBCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) loadConfig() (odb.Config, error) {
	return odb.LoadConfig(a.configPath)
}

func (a *app) client(cmd *cobra.Command) (*odb.Client, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return odb.NewClient(cmd.Context(), cfg, a.options...)
}

// parsePairs "col=value" 按顺序解析
func parsePairs(pairs []string) ([]string, []any, error) {
	cols := make([]string, 0, len(pairs))
	vals := make([]any, 0, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, nil, errors.Errorf("invalid pair %q, want column=value", p)
		}
		cols = append(cols, strings.TrimSpace(k))
		vals = append(vals, v)
	}
	return cols, vals, nil
}

// parseWhere 没有 --where 时返回 nil
func parseWhere(pairs []string) (builder.Conditions, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	cols, vals, err := parsePairs(pairs)
	if err != nil {
		return nil, err
	}
	conds := builder.Where()
	for i := range cols {
		conds = conds.And(cols[i], vals[i])
	}
	return conds, nil
}

func printRows(w io.Writer, rows []odb.Row) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		out := make([]any, len(r))
		for i, v := range r {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			out[i] = v
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) selectCmd() *cobra.Command {
	var columns []string
	var where []string
	cmd := &cobra.Command{
		Use:   "select <table>",
		Short: "Select columns, print one JSON array per row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conds, err := parseWhere(where)
			if err != nil {
				return err
			}
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			rows, err := c.Select(cmd.Context(), args[0], columns, conds)
			if err != nil {
				return err
			}
			return printRows(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringSliceVar(&columns, "columns", []string{"*"}, "columns to select")
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "condition column=value, repeatable")
	return cmd
}

func (a *app) insertCmd() *cobra.Command {
	var values []string
	cmd := &cobra.Command{
		Use:   "insert <table>",
		Short: "Insert one row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, vals, err := parsePairs(values)
			if err != nil {
				return err
			}
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			n, err := c.Insert(cmd.Context(), args[0], cols, vals)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) inserted\n", n)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&values, "value", nil, "column=value, repeatable")
	return cmd
}

func (a *app) updateCmd() *cobra.Command {
	var set string
	var where []string
	cmd := &cobra.Command{
		Use:   "update <table>",
		Short: "Update one column, does nothing without --where",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, vals, err := parsePairs([]string{set})
			if err != nil {
				return err
			}
			conds, err := parseWhere(where)
			if err != nil {
				return err
			}
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			n, err := c.Update(cmd.Context(), args[0], cols[0], vals[0], conds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) updated\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "column=value")
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "condition column=value, repeatable")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var where []string
	cmd := &cobra.Command{
		Use:   "delete <table>",
		Short: "Delete rows, at least one --where is required",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conds, err := parseWhere(where)
			if err != nil {
				return err
			}
			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			n, err := c.Delete(cmd.Context(), args[0], conds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d row(s) deleted\n", n)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "condition column=value, repeatable")
	return cmd
}

// 数据库级别的命令不做创建检查
func (a *app) serverClient(cmd *cobra.Command) (*odb.Client, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Mode = odb.ModeAssume
	return odb.NewClient(cmd.Context(), cfg, a.options...)
}

func (a *app) existsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists",
		Short: "Report whether the configured database exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.serverClient(cmd)
			if err != nil {
				return err
			}
			ok, err := c.DatabaseExists(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func (a *app) databasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "List databases on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.serverClient(cmd)
			if err != nil {
				return err
			}
			names, err := c.ListDatabases(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func (a *app) createDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-db",
		Short: "Create the configured database if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.serverClient(cmd)
			if err != nil {
				return err
			}
			return c.EnsureDatabase(cmd.Context())
		},
	}
}

func (a *app) dropDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop-db",
		Short: "Drop the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.serverClient(cmd)
			if err != nil {
				return err
			}
			return c.DropDatabase(cmd.Context())
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	var showPassword bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if !showPassword && cfg.Connection.Password != "" {
				cfg.Connection.Password = "******"
			}
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}
	cmd.Flags().BoolVar(&showPassword, "show-password", false, "print the password in clear text")
	return cmd
}
