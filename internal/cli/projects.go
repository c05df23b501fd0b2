package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	projectsAdd     string
	projectsAddTask string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List or edit the project catalog",
	Long: `List the project catalog with its tasks, or add entries.

Examples:
  taskonaut projects                        # list projects and tasks
  taskonaut projects --add Alpha            # add a project
  taskonaut projects --add Alpha --task Dev # add a task to a project`,
	RunE: runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.Flags().StringVar(&projectsAdd, "add", "", "project to add (or add a task to)")
	projectsCmd.Flags().StringVar(&projectsAddTask, "task", "", "task to add to the project")
}

func runProjects(cmd *cobra.Command, args []string) error {
	_, config, _, err := openStores()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if projectsAdd != "" {
		if projectsAddTask == "" {
			if err := config.AddProject(projectsAdd); err != nil {
				return fmt.Errorf("add project: %w", err)
			}
			fmt.Fprintf(out, "Added %s\n", projectsAdd)
			return nil
		}
		known := false
		for _, name := range config.ProjectNames() {
			if name == projectsAdd {
				known = true
				break
			}
		}
		if known {
			if err := config.AddTask(projectsAdd, projectsAddTask); err != nil {
				return fmt.Errorf("add task: %w", err)
			}
		} else if err := config.AddProject(projectsAdd, projectsAddTask); err != nil {
			return fmt.Errorf("add project: %w", err)
		}
		fmt.Fprintf(out, "Added %s - %s\n", projectsAdd, projectsAddTask)
		return nil
	}

	for _, name := range config.ProjectNames() {
		fmt.Fprintf(out, "%s\n", headerStyle.Render(name))
		fmt.Fprintf(out, "  %s\n", strings.Join(config.TasksForProject(name), ", "))
	}
	return nil
}
