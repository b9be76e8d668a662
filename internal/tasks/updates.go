package tasks

import "fmt"

// Phase identifies the pipeline stage a progress update refers to.
type Phase string

const (
	PhaseAuthenticating Phase = "authenticating"
	PhaseSearching      Phase = "searching"
	PhaseFetching       Phase = "fetching"
	PhaseLoading        Phase = "loading"
	PhaseCleaning       Phase = "cleaning"
	PhaseLabeling       Phase = "labeling"
)

// ProgressUpdate is a non-blocking status message emitted by engine operations.
type ProgressUpdate struct {
	Phase   Phase
	Message string
}

func authenticatingUpdate(service string) ProgressUpdate {
	return ProgressUpdate{Phase: PhaseAuthenticating, Message: fmt.Sprintf("authenticating with %s", service)}
}

func searchingUpdate(query string) ProgressUpdate {
	return ProgressUpdate{Phase: PhaseSearching, Message: fmt.Sprintf("searching playlists for %q", query)}
}

func fetchingUpdate(playlistName string) ProgressUpdate {
	return ProgressUpdate{Phase: PhaseFetching, Message: fmt.Sprintf("fetching tracks of %q", playlistName)}
}

func loadingUpdate(path string) ProgressUpdate {
	return ProgressUpdate{Phase: PhaseLoading, Message: fmt.Sprintf("loading %s", path)}
}

func cleaningUpdate(rows int) ProgressUpdate {
	return ProgressUpdate{Phase: PhaseCleaning, Message: fmt.Sprintf("cleaning %d rows", rows)}
}

func labelingUpdate(threshold int) ProgressUpdate {
	return ProgressUpdate{Phase: PhaseLabeling, Message: fmt.Sprintf("labeling hits above popularity %d", threshold)}
}
