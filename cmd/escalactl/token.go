package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/azalim25/cfoescala-sub000/internal/api/middleware"
	"github.com/azalim25/cfoescala-sub000/pkg/jwt"
)

var (
	tokenMember string
	tokenRole   string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite um token de acesso para uso local",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenMember, "member", "m", "", "ID do militar")
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", middleware.RoleMember, "papel: member, moderator ou admin")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "validade (padrão auth.access_token_ttl)")
	tokenCmd.MarkFlagRequired("member")
}

func runToken(cmd *cobra.Command, _ []string) error {
	switch tokenRole {
	case middleware.RoleMember, middleware.RoleModerator, middleware.RoleAdmin:
	default:
		return fmt.Errorf("papel desconhecido: %s", tokenRole)
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	auth := cfg.Auth
	if tokenTTL > 0 {
		auth.AccessTokenTTL = tokenTTL
	}
	token, err := jwt.NewManager(&auth).GenerateAccessToken(tokenMember, tokenRole)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
