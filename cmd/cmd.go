// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, csv, markdown or text",
		Value:   "json",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write output to a file instead of stdout",
	}
}

func (r *Runner) limitFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   "Maximum number of songs to return",
		Value:   r.config.Service.DefaultLimit,
	}
}

// serveCommand runs the HTTP facade
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the metadata API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (overrides [server] host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides [server] port)",
			},
		},
		Action: r.Serve,
	}
}

// searchCommand searches for songs
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search for songs",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags:  []cli.Flag{r.limitFlag(), formatFlag(), outputFlag()},
		Action: r.Search,
	}
}

// batchCommand runs several searches at once
func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Search for several queries at once",
		ArgsUsage: "<query> [query...]",
		Flags: []cli.Flag{
			r.limitFlag(),
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.BatchSearch,
	}
}

// upNextCommand lists the tracks queued after a song
func upNextCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "upnext",
		Aliases: []string{"next"},
		Usage:   "List the tracks that play after a song",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "video_id"},
		},
		Flags:  []cli.Flag{r.limitFlag(), formatFlag(), outputFlag()},
		Action: r.UpNext,
	}
}

// relatedCommand lists more songs from a song's artist and album
func relatedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "related",
		Usage: "List more songs from the artist and album of a song",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "video_id"},
		},
		Flags:  []cli.Flag{formatFlag(), outputFlag()},
		Action: r.Related,
	}
}

// lyricsCommand prints the lyrics of a song
func lyricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lyrics",
		Usage: "Print the lyrics of a song",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "video_id"},
		},
		Flags:  []cli.Flag{formatFlag(), outputFlag()},
		Action: r.Lyrics,
	}
}

// artistCommand lists songs from an artist page
func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artist",
		Usage: "List songs from an artist page",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "channel_id"},
		},
		Flags:  []cli.Flag{r.limitFlag(), formatFlag(), outputFlag()},
		Action: r.ArtistSongs,
	}
}

// albumCommand lists the tracks of an album
func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "album",
		Usage: "List the tracks of an album",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "browse_id"},
		},
		Flags:  []cli.Flag{formatFlag(), outputFlag()},
		Action: r.AlbumSongs,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the example configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON instead of TOML",
					},
				},
				Action: r.ConfigShow,
			},
		},
	}
}
