package console

import (
	"fmt"
	"strings"
)

// Command is the operation selected from the argument vector at startup.
// Exactly one is selected per invocation; malformed argument vectors
// always yield CmdUnrecognized, never a partial match.
type Command int

const (
	CmdUnrecognized Command = iota
	CmdHelp
	CmdRun
	CmdInstallService
	CmdUninstallService
	CmdStartService
	CmdStopService
	CmdTapInstall
	CmdTapUninstall
	CmdTapReinstall
	CmdTunUninstall
	CmdTunCreate
	CmdCalloutInstall
	CmdCalloutUninstall
	CmdCalloutReinstall
)

// ParseCommand selects the command from argv. args[0] is the program
// name and is never matched. Matching is case-insensitive and
// exact-token; the tap, tun and callout groups require a sub-action.
func ParseCommand(args []string) Command {
	if len(args) < 2 {
		return CmdHelp
	}

	sub := func(i int) string {
		if len(args) <= i {
			return ""
		}
		return strings.ToLower(args[i])
	}

	switch strings.ToLower(args[1]) {
	case "help", "/?":
		return CmdHelp
	case "run":
		return CmdRun
	case "install":
		return CmdInstallService
	case "uninstall":
		return CmdUninstallService
	case "start":
		return CmdStartService
	case "stop":
		return CmdStopService
	case "tap":
		switch sub(2) {
		case "install":
			return CmdTapInstall
		case "uninstall":
			return CmdTapUninstall
		case "reinstall":
			return CmdTapReinstall
		}
	case "tun":
		switch sub(2) {
		case "uninstall":
			return CmdTunUninstall
		case "create":
			return CmdTunCreate
		}
	case "callout":
		switch sub(2) {
		case "install":
			return CmdCalloutInstall
		case "uninstall":
			return CmdCalloutUninstall
		case "reinstall":
			return CmdCalloutReinstall
		}
	}
	return CmdUnrecognized
}

// helpText is the static usage table.
func helpText(product, brand, version string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Service v%s\n", product, version)
	fmt.Fprintf(&b, "\nUsage:\n  %s-service <command>\n", brand)
	b.WriteString(`
Available commands:
  install            Install service
  uninstall          Uninstall service
  start              Start service
  stop               Stop service
  run                Run interactively
  tap install        Install TAP adapter driver
  tap uninstall      Uninstall TAP adapter driver
  tap reinstall      Reinstall TAP adapter driver
  tun uninstall      Uninstall TUN adapter driver
  tun create         Create TUN adapter
  callout install    Install WFP callout driver
  callout uninstall  Uninstall WFP callout driver
  callout reinstall  (Re)install WFP callout driver
`)
	return b.String()
}
