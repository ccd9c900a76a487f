// migrate.go
//
// Hierarchical app and store resolution service for the jam-build marketplace
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-appstore.
// jam-build-appstore is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-appstore is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-appstore.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"fmt"
	"strings"

	"github.com/localnerve/jam-build-appstore/data"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate runs automatic migrations for all models, then creates the
// partial unique indexes that guard one active install per (subject, object).
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Store{},
		&models.App{},
		&models.AppExtend{},
		&models.StoreInstall{},
		&models.AppOrder{},
		&models.Install{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return applyPartialIndexes(db)
}

func applyPartialIndexes(db *gorm.DB) error {
	ddl, err := data.PartialIndexes(db.Dialector.Name())
	if err != nil {
		return err
	}

	for _, stmt := range splitStatements(ddl) {
		name := indexName(stmt)
		if name != "" && db.Migrator().HasIndex(&models.Install{}, name) {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", name, err)
		}
	}
	return nil
}

// splitStatements drops comment lines and splits on semicolons
func splitStatements(ddl string) []string {
	var b strings.Builder
	for _, line := range strings.Split(ddl, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var stmts []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// indexName pulls the index name out of "CREATE UNIQUE INDEX <name> ON ..."
func indexName(stmt string) string {
	fields := strings.Fields(stmt)
	for i := 0; i+1 < len(fields); i++ {
		if strings.EqualFold(fields[i], "INDEX") {
			return fields[i+1]
		}
	}
	return ""
}
