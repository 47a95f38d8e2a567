package testutils

import (
	"testing"
)

func TestDBName(t *testing.T) {
	type args struct {
		name string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{"many slash", args{name: "Test_sqlLedgerImpl_ListCertificate/pgsql/status"}, "test_sqlledgerimpl_listcertificate_pgsql_status"},
		{"spaces", args{name: "TestIssue/valid name"}, "testissue_valid_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DBName(tt.args.name); got != tt.want {
				t.Errorf("DBName() = %v, want %v", got, tt.want)
			}
		})
	}
}
