// Command uploader sends a local file to a VaultCast server in parallel chunks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vaultcast/client"

	"github.com/docker/go-units"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "VaultCast base URL")
	file := flag.String("file", "", "File to upload")
	title := flag.String("title", "", "Asset title")
	description := flag.String("description", "", "Asset description")
	chunkSize := flag.String("chunk-size", "8MiB", "Chunk size, e.g. 512KiB or 8MiB")
	parallel := flag.Int("parallel", 4, "Chunks sent at once")
	wait := flag.Bool("wait", false, "Wait until the merge finished")
	username := flag.String("user", "", "Username, when the server requires a token")
	password := flag.String("password", "", "Password, when the server requires a token")
	download := flag.String("download", "", "Download this published file name instead of uploading")
	logLevel := flag.String("log-level", "INFO", "DEBUG, INFO, WARN or ERROR")
	flag.Parse()

	log := logs.GetLoggerFromString(*logLevel)

	size, err := units.RAMInBytes(*chunkSize)
	if err != nil || size <= 0 {
		fmt.Fprintf(os.Stderr, "invalid -chunk-size %q\n", *chunkSize)
		os.Exit(2)
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		flag.Usage()
		os.Exit(2)
	}

	c, err := client.New(client.Options{BaseURL: *addr, ChunkSize: size, Parallelism: *parallel}, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *username != "" {
		if err := c.Login(ctx, *username, *password); err != nil {
			log.Error("Login failed", "error", err)
			os.Exit(1)
		}
	}

	if *download != "" {
		if err := c.Download(ctx, *download, *file); err != nil {
			log.Error("Download failed", "file_name", *download, "error", err)
			os.Exit(1)
		}
		log.Info("Downloaded", "file_name", *download, "dest", *file)
		return
	}

	start := time.Now()
	result, err := c.UploadFile(ctx, *file, client.Metadata{Title: *title, Description: *description})
	if err != nil {
		log.Error("Upload failed", "session_id", result.SessionID, "error", err)
		os.Exit(1)
	}
	log.Info("Upload complete",
		"session_id", result.SessionID,
		"chunks", result.Chunks,
		"size", units.BytesSize(float64(result.Size)),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if !*wait {
		return
	}
	status, err := c.WaitMerged(ctx, result.SessionID, 500*time.Millisecond)
	if err != nil {
		log.Error("Merge did not complete", "session_id", result.SessionID, "error", err)
		os.Exit(1)
	}
	log.Info("Asset published", "asset_id", status.AssetID, "file_name", result.FileName)
}
