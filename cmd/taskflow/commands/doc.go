// Package commands defines the taskflow CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login          Sign in and print the welcome header
//   - register       Create an account
//   - tasks          Sign in and list your tasks
//   - theme          Print the display mode; "theme toggle" flips it
//   - shell          Interactive session that keeps you signed in until quit or logout
//
// # Implementation
//
// The root command loads configuration and builds the dependency graph (queue,
// preference storage, services, HTTP client) before any subcommand runs, and
// closes it afterwards, which also writes the metrics textfile when one is
// configured. Sessions live only as long as the process, so one-shot commands
// that need an identity sign in first; the shell keeps one session across
// many commands.
package commands
