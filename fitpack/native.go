package fitpack

// Native exposes the routines of this package as a value, for callers that
// select their solver at run time. It is stateless and safe for concurrent
// use; the workspaces are not.
type Native struct{}

// FitNonParametric calls [Curfit].
func (Native) FitNonParametric(p *Problem, ws *Workspace) (float64, Status) { return Curfit(p, ws) }

// FitParametric calls [Concur].
func (Native) FitParametric(p *Problem, ws *Workspace) (float64, Status) { return Concur(p, ws) }

// FitClosed calls [Clocur].
func (Native) FitClosed(p *Problem, ws *Workspace) (float64, Status) { return Clocur(p, ws) }
