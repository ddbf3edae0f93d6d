package console

import "testing"

// TestParseCommand tests the full command grammar
func TestParseCommand(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   Command
		reason string
	}{
		// Short argument vectors
		{
			name:   "no arguments",
			args:   []string{"seawall-service"},
			want:   CmdHelp,
			reason: "no subcommand behaves as help",
		},
		{
			name:   "empty argv",
			args:   nil,
			want:   CmdHelp,
			reason: "an empty vector must not panic",
		},

		// Simple commands
		{name: "help", args: []string{"prog", "help"}, want: CmdHelp},
		{name: "help slash", args: []string{"prog", "/?"}, want: CmdHelp},
		{name: "run", args: []string{"prog", "run"}, want: CmdRun},
		{name: "install", args: []string{"prog", "install"}, want: CmdInstallService},
		{name: "uninstall", args: []string{"prog", "uninstall"}, want: CmdUninstallService},
		{name: "start", args: []string{"prog", "start"}, want: CmdStartService},
		{name: "stop", args: []string{"prog", "stop"}, want: CmdStopService},

		// Case insensitivity
		{
			name:   "upper case run",
			args:   []string{"prog", "RUN"},
			want:   CmdRun,
			reason: "matching is case-insensitive",
		},
		{
			name:   "mixed case run",
			args:   []string{"prog", "Run"},
			want:   CmdRun,
			reason: "matching is case-insensitive",
		},
		{
			name:   "mixed case group and sub-action",
			args:   []string{"prog", "Tap", "ReInstall"},
			want:   CmdTapReinstall,
			reason: "both tokens match case-insensitively",
		},

		// Driver groups
		{name: "tap install", args: []string{"prog", "tap", "install"}, want: CmdTapInstall},
		{name: "tap uninstall", args: []string{"prog", "tap", "uninstall"}, want: CmdTapUninstall},
		{name: "tap reinstall", args: []string{"prog", "tap", "reinstall"}, want: CmdTapReinstall},
		{name: "tun uninstall", args: []string{"prog", "tun", "uninstall"}, want: CmdTunUninstall},
		{name: "tun create", args: []string{"prog", "tun", "create"}, want: CmdTunCreate},
		{name: "callout install", args: []string{"prog", "callout", "install"}, want: CmdCalloutInstall},
		{name: "callout uninstall", args: []string{"prog", "callout", "uninstall"}, want: CmdCalloutUninstall},
		{name: "callout reinstall", args: []string{"prog", "callout", "reinstall"}, want: CmdCalloutReinstall},

		// Unrecognized forms
		{
			name:   "unknown top-level",
			args:   []string{"prog", "restart"},
			want:   CmdUnrecognized,
			reason: "unknown token never partially matches",
		},
		{
			name:   "tap without sub-action",
			args:   []string{"prog", "tap"},
			want:   CmdUnrecognized,
			reason: "driver groups require a sub-action",
		},
		{
			name:   "tun without sub-action",
			args:   []string{"prog", "tun"},
			want:   CmdUnrecognized,
			reason: "driver groups require a sub-action",
		},
		{
			name:   "callout without sub-action",
			args:   []string{"prog", "callout"},
			want:   CmdUnrecognized,
			reason: "driver groups require a sub-action",
		},
		{
			name:   "tap unknown sub-action",
			args:   []string{"prog", "tap", "remove"},
			want:   CmdUnrecognized,
			reason: "unknown sub-action never partially matches",
		},
		{
			name:   "tun install is not a command",
			args:   []string{"prog", "tun", "install"},
			want:   CmdUnrecognized,
			reason: "the tun group only supports uninstall and create",
		},
		{
			name:   "prefix does not match",
			args:   []string{"prog", "ru"},
			want:   CmdUnrecognized,
			reason: "matching is exact-token, not prefix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCommand(tt.args); got != tt.want {
				t.Errorf("ParseCommand(%v) = %v, want %v: %s", tt.args, got, tt.want, tt.reason)
			}
		})
	}
}

// TestProgramName tests argv[0] normalization for the usage hint
func TestProgramName(t *testing.T) {
	tests := []struct {
		arg0 string
		want string
	}{
		{"seawall-service", "seawall-service"},
		{"bin/seawall-service.exe", "seawall-service"},
		{"/opt/seawall-vpn/seawall-service", "seawall-service"},
	}

	for _, tt := range tests {
		t.Run(tt.arg0, func(t *testing.T) {
			if got := programName(tt.arg0); got != tt.want {
				t.Errorf("programName(%q) = %q, want %q", tt.arg0, got, tt.want)
			}
		})
	}
}
