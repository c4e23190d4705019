package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
)

var ErrUsage = errors.New(`usage: lookup id <imdb id>
       lookup title <title> [year]
       lookup search <key>
       lookup poster <imdb id> [height] [output file]`)

// LookupCmd runs a single lookup and prints the JSON answer to out. Posters
// are written to the output file when one is given, to out otherwise.
func LookupCmd(ctx context.Context, services *Services, args []string, out io.Writer) error {
	if len(args) < 2 {
		return ErrUsage
	}
	client := services.OmdbClient

	var payload any
	var err error

	switch args[0] {
	case "id":
		payload, err = client.FindByID(ctx, args[1])

	case "title":
		year := 0
		if len(args) > 2 {
			if year, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid year %q: %w", args[2], err)
			}
		}
		payload, err = client.FindByTitle(ctx, args[1], year)

	case "search":
		payload, err = client.Find(ctx, args[1])

	case "poster":
		return lookupPoster(ctx, services, args[1:], out)

	default:
		return ErrUsage
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func lookupPoster(ctx context.Context, services *Services, args []string, out io.Writer) error {
	height := 0
	if len(args) > 1 {
		var err error
		if height, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("invalid height %q: %w", args[1], err)
		}
	}

	poster, err := services.OmdbClient.FindPoster(ctx, args[0], height)
	if err != nil {
		return err
	}

	if len(args) > 2 {
		if err := os.WriteFile(args[2], poster, 0o644); err != nil {
			return fmt.Errorf("write poster to %s: %w", args[2], err)
		}
		services.Logger.Info("poster saved", zap.String("id", args[0]), zap.String("path", args[2]), zap.Int("bytes", len(poster)))
		return nil
	}

	_, err = out.Write(poster)
	return err
}
