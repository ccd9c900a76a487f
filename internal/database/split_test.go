package database

import "testing"

func TestSplitStatements(t *testing.T) {
	ddl := `-- leading comment
CREATE UNIQUE INDEX a ON t (x) WHERE y IS NULL;
  -- another
CREATE UNIQUE INDEX b ON t (z);
`
	stmts := splitStatements(ddl)
	if len(stmts) != 2 {
		t.Fatalf("Expected 2 statements, got %d: %q", len(stmts), stmts)
	}
	if got := indexName(stmts[0]); got != "a" {
		t.Errorf("Expected index a, got %s", got)
	}
	if got := indexName(stmts[1]); got != "b" {
		t.Errorf("Expected index b, got %s", got)
	}
	if got := indexName("SELECT 1"); got != "" {
		t.Errorf("Expected no index name, got %s", got)
	}
}
