package main

import (
	"fmt"

	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/spf13/cobra"
)

var adminReq entity.AdminRequest

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the administrator account or promote an existing employee",
	Long: `Creates an administrator with the given email, username and password.
If an employee with the email already exists it is promoted instead and the
other flags are ignored.

Example:
  dreamteam create-admin --email admin@email.com --username admin --password admin2019`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openStores(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close()

		emp, created, err := newControllers(s).AuthController.CreateAdmin(cmd.Context(), adminReq)
		if err != nil {
			return err
		}

		verb := "Promoted"
		if created {
			verb = "Created"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s admin %s (id %d)\n", verb, emp.Username, emp.ID)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the development fixtures (admin, test_user, sample departments and roles)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openStores(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := newControllers(s).AuthController.Seed(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d employees, %d departments, %d roles\n",
			res.Employees, res.Departments, res.Roles)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminReq.Email, "email", "", "Admin email (required)")
	createAdminCmd.Flags().StringVar(&adminReq.Username, "username", "admin", "Admin username")
	createAdminCmd.Flags().StringVar(&adminReq.Password, "password", "", "Admin password (required)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
