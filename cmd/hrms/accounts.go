package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hrms/internal/app/server"
	"hrms/internal/domain/auth"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the bcrypt hash of a password",
	Long: `Print the bcrypt hash stored for an account password.

The password is read from the first line of stdin when no argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
		if password == "" {
			return fmt.Errorf("password is empty")
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var grantCmd = &cobra.Command{
	Use:   "grant <email> <level>",
	Short: "Set the role level of an account",
	Long: `Set the role level of an existing account.

Levels: 1 full access, 0 read-only, -1 no access.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(args[1])
		if err != nil {
			return err
		}
		if err := requirePostgres(cmd); err != nil {
			return err
		}
		pool, err := server.ConnectDatabase(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := auth.NewService(auth.NewStore(pool)).Grant(cmd.Context(), args[0], level); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", auth.NormalizeEmail(args[0]), auth.RoleForLevel(level))
		return nil
	},
}

func parseLevel(raw string) (int, error) {
	level, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || level < auth.LevelNone || level > auth.LevelAdmin {
		return 0, fmt.Errorf("level must be one of -1, 0, 1, got %q", raw)
	}
	return level, nil
}
