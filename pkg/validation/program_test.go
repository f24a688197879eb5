package validation

import (
	"testing"
)

func TestValidateProgramID(t *testing.T) {
	tests := []struct {
		name      string
		programID string
		wantErr   bool
	}{
		// Valid addresses
		{"token program", "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", false},
		{"system program", "11111111111111111111111111111111", false},
		{"associated token", "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL", false},

		// Invalid addresses
		{"empty", "", true},
		{"too short", "abc", true},
		{"too long", "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DATokenkeg", true},
		{"contains zero", "0okenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", true},
		{"contains capital O", "OokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", true},
		{"contains lowercase l", "lokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", true},
		{"injection attempt", `Tokenkeg"; DROP TABLE--aaaaaaaaaaaaaaaaaa`, true},
		{"whitespace", "Tokenkeg QfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProgramID(tt.programID)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProgramID(%q) error = %v, wantErr %v", tt.programID, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantErr  bool
	}{
		// Valid names
		{"rust source", "program.rs", false},
		{"with underscore", "token_vault.rs", false},
		{"with hyphen", "config-manager.rs", false},
		{"no extension", "lib", false},

		// Invalid names
		{"empty", "", true},
		{"path traversal", "../../etc/passwd", true},
		{"absolute path", "/etc/passwd", true},
		{"windows path", `..\windows\system32`, true},
		{"hidden file", ".env", true},
		{"embedded slash", "src/lib.rs", true},
		{"double dot", "a..b.rs", true},
		{"shell chars", "lib$(rm).rs", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.fileName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFileName(%q) error = %v, wantErr %v", tt.fileName, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeProgramID(t *testing.T) {
	got, err := SanitizeProgramID("  TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA \n")
	if err != nil {
		t.Fatalf("SanitizeProgramID returned error: %v", err)
	}
	if got != "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA" {
		t.Errorf("SanitizeProgramID = %q, want trimmed id", got)
	}

	if _, err := SanitizeProgramID("not base58!"); err == nil {
		t.Error("SanitizeProgramID accepted an invalid id")
	}
}
