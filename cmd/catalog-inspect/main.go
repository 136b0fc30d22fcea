package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"vaultcast/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/docker/go-units"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	kind := flag.String("kind", "assets", "What to list: assets or sessions")
	limit := flag.Int("limit", 0, "Maximum rows, 0 for all")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := newTable()
	var prefix string
	var toRow func(key string, v []byte) ([]string, error)
	switch *kind {
	case "assets":
		prefix = "asset:"
		table.SetHeader([]string{"ID", "File", "Title", "Type", "Size", "Lang", "Uploaded"})
		toRow = assetRow
	case "sessions":
		prefix = "session:"
		table.SetHeader([]string{"Session", "State", "Chunks", "File", "Last activity", "Reason"})
		toRow = sessionRow
	default:
		log.Fatalf("unknown kind %q, expected assets or sessions", *kind)
	}

	rows := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			if *limit > 0 && rows >= *limit {
				return nil
			}
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				row, err := toRow(key, v)
				if err != nil {
					fmt.Printf("Error decoding key %s: %v\n", key, err)
					return nil
				}
				table.Append(row)
				rows++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("\n%d %s\n", rows, *kind)
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func assetRow(_ string, v []byte) ([]string, error) {
	var asset domain.MergedAsset
	if err := json.Unmarshal(v, &asset); err != nil {
		return nil, err
	}
	return []string{
		strconv.FormatUint(asset.ID, 10),
		asset.FileName,
		truncate(asset.Title, 32),
		asset.ContentType,
		units.HumanSize(float64(asset.SizeBytes)),
		asset.Language,
		asset.UploadDate.Format("2006-01-02 15:04:05"),
	}, nil
}

func sessionRow(_ string, v []byte) ([]string, error) {
	var session domain.UploadSession
	if err := json.Unmarshal(v, &session); err != nil {
		return nil, err
	}
	return []string{
		session.SessionID,
		session.State.String(),
		fmt.Sprintf("%d/%d", session.ReceivedCount(), session.TotalChunks),
		session.Meta.OriginalFileName,
		session.LastActivity.Format("2006-01-02 15:04:05"),
		truncate(session.FailureReason, 40),
	}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil && strings.Contains(err.Error(), "Log truncate required") {
		return nil, fmt.Errorf("database needs recovery, start the server once against %s: %w", path, err)
	}
	return db, err
}
