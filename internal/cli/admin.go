package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/waabox/clubinho/internal/clubinho"
	"github.com/waabox/clubinho/internal/domain"
)

var (
	childSearch string
	childClubID string
	childLimit  int

	newChild domain.Child
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the program counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer printToasts(app.Bus, cmd.ErrOrStderr())()
		stats, err := app.API.Dashboard(cmd.Context())
		if err != nil {
			return err
		}
		printDashboard(cmd.OutOrStdout(), stats)
		return nil
	},
}

var childrenCmd = &cobra.Command{
	Use:   "children",
	Short: "List or register children",
}

var childrenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List children",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer printToasts(app.Bus, cmd.ErrOrStderr())()
		children, err := app.API.ListChildren(cmd.Context(), clubinho.ChildFilter{
			Search: childSearch,
			ClubID: childClubID,
			Limit:  childLimit,
		})
		if err != nil {
			return err
		}
		printChildren(cmd.OutOrStdout(), children)
		return nil
	},
}

var childrenCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a child",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer printToasts(app.Bus, cmd.ErrOrStderr())()
		created, err := app.API.CreateChild(cmd.Context(), newChild)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Criança cadastrada: %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "List clubs",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer printToasts(app.Bus, cmd.ErrOrStderr())()
		clubs, err := app.API.ListClubs(cmd.Context())
		if err != nil {
			return err
		}
		printClubs(cmd.OutOrStdout(), clubs)
		return nil
	},
}

func init() {
	childrenListCmd.Flags().StringVar(&childSearch, "search", "", "filter by name")
	childrenListCmd.Flags().StringVar(&childClubID, "club", "", "filter by club id")
	childrenListCmd.Flags().IntVar(&childLimit, "limit", 50, "page size")

	childrenCreateCmd.Flags().StringVar(&newChild.Name, "name", "", "child name")
	childrenCreateCmd.Flags().StringVar(&newChild.BirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	childrenCreateCmd.Flags().StringVar(&newChild.GuardianName, "guardian", "", "guardian name")
	childrenCreateCmd.Flags().StringVar(&newChild.GuardianPhone, "guardian-phone", "", "guardian phone")
	childrenCreateCmd.Flags().StringVar(&newChild.ClubID, "club", "", "club id")

	childrenCmd.AddCommand(childrenListCmd, childrenCreateCmd)
	rootCmd.AddCommand(dashboardCmd, childrenCmd, clubsCmd)
}

func printDashboard(out io.Writer, s domain.DashboardStats) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintf(w, "Crianças\t%d\n", s.TotalChildren)
	_, _ = fmt.Fprintf(w, "Clubes\t%d\n", s.TotalClubs)
	_, _ = fmt.Fprintf(w, "Professores\t%d\n", s.TotalTeachers)
	_, _ = fmt.Fprintf(w, "Pagelas na semana\t%d\n", s.PagelasThisWeek)
	_, _ = fmt.Fprintf(w, "Frequência\t%.0f%%\n", s.AttendanceRate*100)
	_ = w.Flush()
}

func printChildren(out io.Writer, children []domain.Child) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNOME\tNASCIMENTO\tRESPONSÁVEL\tCLUBE")
	for _, c := range children {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.BirthDate, c.GuardianName, c.ClubID)
	}
	_ = w.Flush()
}

func printClubs(out io.Writer, clubs []domain.Club) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNÚMERO\tDIA\tHORA\tATIVO")
	for _, c := range clubs {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%t\n", c.ID, c.Number, c.Weekday, c.Time, c.Active)
	}
	_ = w.Flush()
}
