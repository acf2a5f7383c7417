package custodyd

// Version is the application version, set at build time with
//   -ldflags "-X github.com/iov-one/custody/cmd/custodyd/app.Version=..."
var Version = "dev"
