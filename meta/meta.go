// meta/meta.go
package meta

// CONFIG_FILE is the config path looked up under the XDG config directories.
const CONFIG_FILE = "uctbot/config.yaml"

// POLICY defines the default rollout policy.
const POLICY = "uniform"

// GAMES defines the number of self-play games per match up.
const GAMES = 10

// WORKERS defines the number of games played in parallel.
const WORKERS = 4

// OUTPUT_DIR defines where experiment records are written.
const OUTPUT_DIR = "experiments"

const LOG_LEVEL = "info"

// ADDR defines the listen address of the move server.
const ADDR = ":8080"
