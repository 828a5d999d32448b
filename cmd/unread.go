package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/zhubert/snappy/internal/contacts"
	perrors "github.com/zhubert/snappy/internal/errors"
	"github.com/zhubert/snappy/internal/logger"
	"github.com/zhubert/snappy/internal/ui"
)

// unreadService is the part of the API client the unread command uses.
type unreadService interface {
	ui.MessageService
	Contacts(ctx context.Context, userID string) ([]contacts.Contact, error)
}

var unreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Print unread message counts for the stored identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, identities, err := openIdentities(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := identities.Load()
		if perrors.Is(err, perrors.KindNotFound) {
			return fmt.Errorf("not logged in, run snappy login first")
		}
		if err != nil {
			return err
		}
		return runUnread(cmd.Context(), user, newClient(cfg), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(unreadCmd)
}

// unreadRow is one line of the unread table
type unreadRow struct {
	ID       string
	Username string
	Count    int
}

// unreadRows joins counts with usernames and sorts by count descending, then id.
// Zero counts are left out.
func unreadRows(counts contacts.Counts, directory []contacts.Contact) []unreadRow {
	names := lo.SliceToMap(directory, func(c contacts.Contact) (string, string) {
		return c.ID, c.Username
	})

	entries := lo.Filter(lo.Entries(counts), func(e lo.Entry[string, int], _ int) bool {
		return e.Value > 0
	})
	rows := lo.Map(entries, func(e lo.Entry[string, int], _ int) unreadRow {
		return unreadRow{ID: e.Key, Username: names[e.Key], Count: e.Value}
	})

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func runUnread(ctx context.Context, user *contacts.CurrentUser, service unreadService, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	counts, err := service.UnreadCounts(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("error fetching unread counts: %w", err)
	}
	// The directory only supplies names; ids are printed without it
	directory, err := service.Contacts(ctx, user.ID)
	if err != nil {
		logger.WithComponent("cmd").Warn("failed to load contact directory", "error", err)
		directory = nil
	}

	rows := unreadRows(counts, directory)
	if len(rows) == 0 {
		fmt.Fprintln(out, "No unread messages.")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Username", "Unread"})
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
	table.SetNoWhiteSpace(true)
	for _, r := range rows {
		table.Append([]string{r.ID, r.Username, strconv.Itoa(r.Count)})
	}
	table.Render()

	conversations := "conversations"
	if len(rows) == 1 {
		conversations = "conversation"
	}
	fmt.Fprintf(out, "\n%d unread in %d %s\n", counts.Total(), len(rows), conversations)
	return nil
}
