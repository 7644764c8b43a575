package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/rectalogic/terp/internal/export"
	"github.com/rectalogic/terp/internal/logging"
	"github.com/rectalogic/terp/internal/net"
	"github.com/rectalogic/terp/internal/project"
	"github.com/rectalogic/terp/internal/state"
	"github.com/rectalogic/terp/internal/ui"
)

const browseTimeout = 3 * time.Second

// loadSession reads path into a fresh session. A missing file gives an
// empty session.
func loadSession(path string) (*state.Session, error) {
	s := state.NewSession()
	if err := project.Load(s, path); err != nil {
		return nil, err
	}
	return s, nil
}

func newEditCmd(opts *options) *cobra.Command {
	var projectPath string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the drawing editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(projectPath)
			if err != nil {
				return err
			}
			return ui.RunEditor(opts.cfg, s, projectPath)
		},
	}
	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "project file to load and save")
	return cmd
}

func newPlayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "play <project>",
		Short: "Play a project, reloading it when the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			s, err := loadSession(path)
			if err != nil {
				return err
			}
			return ui.RunPlayer(opts.cfg, s, path, func(ctx context.Context, p *ui.Player) error {
				return project.Watch(ctx, path, p.Replace)
			})
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		output string
		frames int
		ts     []float32
	)
	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Render frames of a project to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(args[0])
			if err != nil {
				return err
			}
			drawings, err := s.Drawings()
			if err != nil {
				return err
			}
			if len(ts) == 0 {
				ts = export.FrameTimes(frames)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := export.PDF(f, drawings, ts); err != nil {
				f.Close()
				os.Remove(output)
				return fmt.Errorf("export %s: %w", args[0], err)
			}
			logging.L().Info("exported", "output", output, "pages", len(ts))
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "terp.pdf", "PDF file to write")
	cmd.Flags().IntVar(&frames, "frames", 1, "number of evenly spaced frames")
	cmd.Flags().Float32SliceVar(&ts, "t", nil, "explicit progress values, overrides --frames")
	return cmd
}

func newShareCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "share <project>",
		Short: "Serve a project to players on the local network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			host := net.NewHost()
			data, err := project.Read(path)
			if err != nil {
				return err
			}
			if data != nil {
				if _, err := project.Decode(data); err != nil {
					return fmt.Errorf("share %s: %w", path, err)
				}
				host.Publish(data)
			}

			mux := http.NewServeMux()
			mux.Handle(net.ProjectPath, host)
			server := &http.Server{Addr: fmt.Sprintf(":%d", opts.cfg.Share.Port), Handler: mux}
			errs := make(chan error, 1)
			go func() { errs <- server.ListenAndServe() }()

			hostname, _ := os.Hostname()
			mdnsServer, err := net.Advertise(hostname, opts.cfg.Share.Service, opts.cfg.Share.Port)
			if err != nil {
				logging.L().Warn("mdns advertise", "err", err)
			} else {
				defer mdnsServer.Shutdown()
			}

			go func() {
				err := project.Watch(ctx, path, func(data []byte) {
					if _, err := project.Decode(data); err != nil {
						logging.L().Warn("skip project update", "err", err)
						return
					}
					host.Publish(data)
				})
				if err != nil {
					logging.L().Error("watch project", "err", err)
				}
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "sharing %s, join with: terp join %s\n", path, net.ShareAddr(opts.cfg.Share.Port))

			select {
			case err := <-errs:
				return err
			case <-ctx.Done():
			}
			shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := server.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}

func newJoinCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "join [addr]",
		Short: "Play a project shared by another terp",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var addr string
			if len(args) == 1 {
				addr = args[0]
			} else {
				found, err := net.First(cmd.Context(), opts.cfg.Share.Service, browseTimeout)
				if err != nil {
					return err
				}
				addr = found
			}
			logging.L().Info("joining", "addr", addr)
			return ui.RunPlayer(opts.cfg, state.NewSession(), addr, func(ctx context.Context, p *ui.Player) error {
				return net.Join(ctx, addr, p.Replace)
			})
		},
	}
}
