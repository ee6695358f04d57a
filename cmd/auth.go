package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/finallyfriday/encore/internal/server"
	"github.com/finallyfriday/encore/internal/services"
	"github.com/finallyfriday/encore/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const oauthTimeout = 2 * time.Minute

// SpotifyAuth runs the OAuth2 authorization code flow against Spotify and
// stores the resulting tokens in the config file.
func (r *Runner) SpotifyAuth(ctx context.Context, cmd *cli.Command) error {
	r.applyDebug(cmd)

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	service, err := services.NewSpotifyService(config.Spotify.Map())
	if err != nil {
		return err
	}

	token, err := r.doOAuth(ctx, service, config.Server)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if err := r.saveTokens(token); err != nil {
		return err
	}

	r.logger.Info("authentication complete", "service", service.Name())
	return r.writePlain("Authenticated with %s. Tokens saved to %s.\n", service.Name(), r.configPath)
}

// doOAuth opens the browser for user consent and waits for the callback
// server to deliver the exchanged token.
func (r *Runner) doOAuth(ctx context.Context, svc services.OAuthService, serverConfig shared.ServerConfig) (*oauth2.Token, error) {
	state := shared.GenerateState()
	handler := server.NewOAuthHandler(svc.GetOAuthConfig(), state)

	addr := fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port)
	callbackServer := server.NewCallbackServer(addr, handler)

	serverErrors := make(chan error, 1)
	go func() {
		if err := callbackServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Give the listener a moment before sending the user to it.
	time.Sleep(100 * time.Millisecond)

	authURL := svc.GetAuthURL(state)
	r.logger.Info("opening browser for authorization", "url", authURL)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("could not open browser, visit the URL manually", "url", authURL, "error", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = callbackServer.Shutdown(shutdownCtx)
	}()

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return nil, result.Error()
		}
		return result.Token, nil
	case err := <-serverErrors:
		return nil, fmt.Errorf("callback server failed: %w", err)
	case <-time.After(oauthTimeout):
		return nil, fmt.Errorf("%w: no callback within %s", shared.ErrTimeout, oauthTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
