// Package cli содержит команды служебной утилиты shellctl: выпуск токенов
// для локальной разработки, просмотр меню по роли, ключи записей гейта
// и применение миграций.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/dashboard-shell/internal/config"
	"github.com/magabrotheeeer/dashboard-shell/internal/gate"
	"github.com/magabrotheeeer/dashboard-shell/internal/lib/jwt"
	"github.com/magabrotheeeer/dashboard-shell/internal/migrations"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
	"github.com/magabrotheeeer/dashboard-shell/internal/navigation"
	"github.com/magabrotheeeer/dashboard-shell/internal/storage/postgresql"
)

// NewRootCmd собирает дерево команд shellctl.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "shellctl",
		Short:         "Служебная утилита dashboard-shell",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "путь к конфигу (по умолчанию CONFIG_PATH)")

	loadConfig := func() (*config.Config, error) {
		if configPath == "" {
			return config.Load(config.PathFromEnv())
		}
		return config.Load(configPath)
	}

	root.AddCommand(
		newTokenCmd(loadConfig),
		newNavCmd(),
		newRecordKeyCmd(),
		newMigrateCmd(loadConfig),
	)
	return root
}

func newTokenCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		user models.User
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпустить bearer-токен для локальной разработки",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if ttl == 0 {
				ttl = cfg.TokenTTL
			}
			token, err := jwt.NewJWTMaker(cfg.JWTSecretKey, ttl).GenerateToken(user)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&user.ID, "user-id", "", "идентификатор пользователя")
	cmd.Flags().StringVar(&user.Name, "name", "", "отображаемое имя")
	cmd.Flags().StringVar(&user.Role, "role", "", "роль: Admin, Manager или User")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "время жизни токена (по умолчанию из конфига)")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func newNavCmd() *cobra.Command {
	var (
		user models.User
		path string
	)
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Показать боковую панель для роли и текущего пути",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), navigation.BuildView(&user, path))
		},
	}
	cmd.Flags().StringVar(&user.Role, "role", "", "роль пользователя")
	cmd.Flags().StringVar(&user.Name, "name", "", "отображаемое имя")
	cmd.Flags().StringVar(&path, "path", "", "текущий путь, например /tasks")
	return cmd
}

func newRecordKeyCmd() *cobra.Command {
	var (
		userID string
		date   string
	)
	cmd := &cobra.Command{
		Use:   "record-key",
		Short: "Показать ключ записи гейта пользователя за день (UTC)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			at := time.Now()
			if date != "" {
				parsed, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				at = parsed
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), gate.RecordKey(userID, at))
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "идентификатор пользователя")
	cmd.Flags().StringVar(&date, "date", "", "дата в формате 2006-01-02 (по умолчанию сегодня)")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func newMigrateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции gate_records к PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.StorageConnectionString == "" {
				return fmt.Errorf("storage_connection_string is not set")
			}
			db, err := postgresql.New(cmd.Context(), cfg.StorageConnectionString)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
