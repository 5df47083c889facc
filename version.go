package synthaser

// Version is set at build time with -ldflags "-X github.com/aretw0/synthaser.Version=...".
var Version = "dev"
