package wayfinder

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/wayfinder.Version=v1.2.3".
var Version = "dev"
