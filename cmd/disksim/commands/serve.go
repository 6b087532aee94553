package commands

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ovasyliv/disksim/simulator"
)

var serveFlags struct {
	port          int
	eventsPerTick int
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		return true
	},
}

// ClientMessage is a command from the browser
type ClientMessage struct {
	Type   string            `json:"type"`
	Config *simulator.Config `json:"config,omitempty"`
}

// ServerMessage is an update pushed to the browser
type ServerMessage struct {
	Type    string                 `json:"type"`
	Running *bool                  `json:"running,omitempty"`
	Config  *simulator.Config      `json:"config,omitempty"`
	Stats   *simulator.Statistics  `json:"stats,omitempty"`
	State   map[string]interface{} `json:"state,omitempty"`
	Events  []string               `json:"events,omitempty"`
}

// simState manages one client's simulation and its pacing
type simState struct {
	sim     *simulator.Simulator
	running bool
	mu      sync.Mutex
	stopCh  chan struct{}

	eventLog []string
}

func newSimState(config simulator.Config) (*simState, error) {
	sim, err := simulator.NewSimulator(config)
	if err != nil {
		return nil, err
	}
	s := &simState{
		sim:    sim,
		stopCh: make(chan struct{}),
	}
	sim.LogEvent = s.appendEvent
	return s, nil
}

func (s *simState) appendEvent(msg string) {
	// Bounded backlog: a fast step burst must not grow without limit
	if len(s.eventLog) >= 1000 {
		s.eventLog = s.eventLog[len(s.eventLog)-500:]
	}
	s.eventLog = append(s.eventLog, msg)
}

func (s *simState) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
}

func (s *simState) pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

// reset rebuilds the simulator from its current configuration
func (s *simState) reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(s.sim.Config())
}

func (s *simState) updateConfig(config simulator.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(config)
}

func (s *simState) replaceLocked(config simulator.Config) error {
	sim, err := simulator.NewSimulator(config)
	if err != nil {
		return err
	}
	sim.LogEvent = s.appendEvent
	s.sim = sim
	s.running = false
	s.eventLog = nil
	return nil
}

func (s *simState) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && !s.sim.Done()
}

func (s *simState) getConfig() simulator.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Config()
}

// step advances the simulation by up to n events and returns the update to
// push: a statistics snapshot, the component state and the events that fired
func (s *simState) step(n int) (*simulator.Statistics, map[string]interface{}, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		for i := 0; i < n; i++ {
			if !s.sim.Step() {
				s.running = false
				break
			}
		}
		if s.sim.Done() {
			s.sim.Statistics().Finalize(s.sim.VirtualTime())
			s.running = false
		}
	}

	events := s.eventLog
	s.eventLog = nil
	return s.sim.Statistics().Clone(), s.sim.State(), events
}

func (s *simState) stop() {
	close(s.stopCh)
}

// safeConn wraps a WebSocket connection with a mutex to prevent concurrent writes
type safeConn struct {
	*websocket.Conn
	writeMu sync.Mutex
}

func (sc *safeConn) WriteJSON(v interface{}) error {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	return sc.Conn.WriteJSON(v)
}

// uiUpdateLoop periodically advances the simulation and pushes updates.
// Runs in its own goroutine per client.
func uiUpdateLoop(conn *safeConn, state *simState) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-state.stopCh:
			return

		case <-ticker.C:
			if !state.isRunning() {
				continue
			}
			stats, snapshot, events := state.step(serveFlags.eventsPerTick)
			updatePrometheusMetrics(stats, snapshot)

			msg := ServerMessage{
				Type:   "update",
				Stats:  stats,
				State:  snapshot,
				Events: events,
			}
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("Error sending update: %v", err)
				return
			}
		}
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading connection: %v", err)
		return
	}
	defer conn.Close()

	sc := &safeConn{Conn: conn}
	log.Println("Client connected")

	config := simulator.DefaultConfig()
	state, err := newSimState(config)
	if err != nil {
		log.Printf("Error creating simulator: %v", err)
		return
	}
	defer state.stop()

	running := false
	if err := sc.WriteJSON(ServerMessage{Type: "status", Running: &running, Config: &config}); err != nil {
		log.Printf("Error sending status: %v", err)
		return
	}

	go uiUpdateLoop(sc, state)

	sendStatus := func() {
		running := state.isRunning()
		cfg := state.getConfig()
		sc.WriteJSON(ServerMessage{Type: "status", Running: &running, Config: &cfg})
	}

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error reading message: %v", err)
			}
			break
		}

		switch msg.Type {
		case "start":
			state.start()
			sendStatus()
		case "pause":
			state.pause()
			sendStatus()
		case "reset":
			if err := state.reset(); err != nil {
				log.Printf("Error resetting: %v", err)
			}
			sendStatus()
		case "config_update":
			if msg.Config == nil {
				continue
			}
			if err := state.updateConfig(*msg.Config); err != nil {
				log.Printf("Error updating config: %v", err)
			} else {
				sendStatus()
			}
		default:
			log.Printf("Unknown command: %s", msg.Type)
		}
	}

	log.Println("Client disconnected")
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"service":  "disksim",
		"defaults": simulator.DefaultConfig(),
	})
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over WebSocket with Prometheus metrics",
	Long: `Starts an HTTP server. Each WebSocket client on /ws gets its own
simulator driven by start/pause/reset/config_update commands; /metrics
exposes the most recent run's statistics to Prometheus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		initPrometheusMetrics()

		mux := http.NewServeMux()
		mux.HandleFunc("/", handleStatus)
		mux.HandleFunc("/ws", handleWebSocket)
		mux.Handle("/metrics", promhttp.Handler())

		addr := fmt.Sprintf(":%d", serveFlags.port)
		log.Printf("Listening on %s", addr)
		return http.ListenAndServe(addr, mux)
	},
}

func init() {
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 8080, "HTTP listen port")
	serveCmd.Flags().IntVar(&serveFlags.eventsPerTick, "events-per-tick", 50, "Simulation events processed per UI update")
	rootCmd.AddCommand(serveCmd)
}
