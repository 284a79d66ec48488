package controllers

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/adamanr/dreamteam/internal/entity"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Employees"

var exportHeader = []interface{}{"ID", "Username", "Email", "First name", "Last name", "Department", "Role", "Admin"}

// Export writes the employee directory as an XLSX workbook.
func (c *EmployeeController) Export(ctx context.Context, actor *entity.Actor, w io.Writer) error {
	employees, err := c.List(ctx, actor)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			c.deps.Logger.Warn("Error closing workbook", slog.String("error", closeErr.Error()))
		}
	}()

	if err = f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err = f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err = f.SetCellStyle(exportSheet, "A1", "H1", style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, emp := range employees {
		cell, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return cellErr
		}

		row := []interface{}{
			emp.ID,
			emp.Username,
			emp.Email,
			emp.FirstName,
			emp.LastName,
			departmentName(emp.Department),
			roleName(emp.Role),
			yesNo(emp.IsAdmin),
		}
		if err = f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err = f.Write(w); err != nil {
		c.deps.Logger.Error("Error writing workbook", slog.String("error", err.Error()))
		return err
	}

	c.deps.Logger.Info("Employees exported", slog.Int("rows", len(employees)))
	return nil
}

func departmentName(d *entity.Department) string {
	if d == nil {
		return ""
	}
	return d.Name
}

func roleName(r *entity.Role) string {
	if r == nil {
		return ""
	}
	return r.Name
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
