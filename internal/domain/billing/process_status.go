package billing

// ProcessStatus is the workflow label of a service order. It has no
// enforced transition graph: an authorized actor may set any value at
// any time, independently of the payment status.
type ProcessStatus string

const (
	ProcessPending         ProcessStatus = "pending"
	ProcessInProgress      ProcessStatus = "in_progress"
	ProcessAwaitingPickup  ProcessStatus = "awaiting_pickup"
	ProcessCompleted       ProcessStatus = "completed"
	ProcessCancelled       ProcessStatus = "cancelled"
)

// IsValid checks if the process status is valid
func (s ProcessStatus) IsValid() bool {
	switch s {
	case ProcessPending, ProcessInProgress, ProcessAwaitingPickup, ProcessCompleted, ProcessCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s ProcessStatus) String() string {
	return string(s)
}

// DisplayName returns the Portuguese label shown to users
func (s ProcessStatus) DisplayName() string {
	switch s {
	case ProcessPending:
		return "Pendente"
	case ProcessInProgress:
		return "Em Andamento"
	case ProcessAwaitingPickup:
		return "Aguardando Retirada"
	case ProcessCompleted:
		return "Concluído"
	case ProcessCancelled:
		return "Cancelado"
	}
	return string(s)
}

// OpenStatuses are the workflow labels counted as work in progress on
// the dashboard.
func OpenStatuses() []ProcessStatus {
	return []ProcessStatus{ProcessInProgress, ProcessAwaitingPickup}
}
