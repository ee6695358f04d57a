// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func debugFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "debug",
		Usage: "Produce DEBUG traces in the logs",
	}
}

// downloadCommand fetches setlists for a concerts CSV file.
func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "download_setlists",
		Aliases: []string{"download", "dl"},
		Usage:   "Download setlists for every concert in a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "concerts_file",
				Usage:    "The CSV file containing the concerts information",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output_dir",
				Usage:    "The directory to write the setlists",
				Required: true,
			},
			configFlag(),
			debugFlag(),
		},
		Action: r.DownloadSetlists,
	}
}

// playlistCommand builds a Spotify playlist from downloaded setlists.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "create_playlist",
		Aliases: []string{"create", "playlist"},
		Usage:   "Create or extend a Spotify playlist from downloaded setlists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input_dir",
				Usage:    "The directory to read the setlists from",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "playlist_name",
				Usage: "The playlist name to populate (a name is generated when omitted)",
			},
			configFlag(),
			debugFlag(),
		},
		Action: r.CreatePlaylist,
	}
}

// authCommand handles Spotify authentication.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with Spotify using OAuth2",
		Flags: []cli.Flag{
			configFlag(),
			debugFlag(),
		},
		Action: r.SpotifyAuth,
	}
}

// configCommand handles configuration file management.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the config file",
						Value: "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
