package socket

import "fmt"

// Broadcaster provides high-level methods for broadcasting events to the
// clients subscribed to a project room.
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

func projectRoom(projectID string) string {
	return fmt.Sprintf("project:%s", projectID)
}

// ============================================
// Project Broadcasting
// ============================================

// BroadcastProjectUpdated broadcasts project changes to project members
func (b *Broadcaster) BroadcastProjectUpdated(projectID, name string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageProjectUpdated, map[string]interface{}{
		"projectId": projectID,
		"name":      name,
	})
}

// BroadcastMemberAdded broadcasts a new participant to project members
func (b *Broadcaster) BroadcastMemberAdded(projectID, memberID, name string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageMemberAdded, map[string]interface{}{
		"projectId": projectID,
		"memberId":  memberID,
		"name":      name,
	})
}

// BroadcastMemberRemoved broadcasts a removed participant to project members
func (b *Broadcaster) BroadcastMemberRemoved(projectID, memberID, name string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageMemberRemoved, map[string]interface{}{
		"projectId": projectID,
		"memberId":  memberID,
		"name":      name,
	})
}

// ============================================
// Task Broadcasting
// ============================================

// BroadcastTaskCreated broadcasts task creation to project members
func (b *Broadcaster) BroadcastTaskCreated(projectID, taskID, name string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageTaskCreated, map[string]interface{}{
		"projectId": projectID,
		"taskId":    taskID,
		"name":      name,
	})
}

// BroadcastTaskUpdated broadcasts task updates to project members
func (b *Broadcaster) BroadcastTaskUpdated(projectID, taskID, name string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageTaskUpdated, map[string]interface{}{
		"projectId": projectID,
		"taskId":    taskID,
		"name":      name,
	})
}

// BroadcastTaskAssigned broadcasts an assignment to project members
func (b *Broadcaster) BroadcastTaskAssigned(projectID, taskID, memberID, name string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageTaskAssigned, map[string]interface{}{
		"projectId":  projectID,
		"taskId":     taskID,
		"memberId":   memberID,
		"memberName": name,
	})
}

// BroadcastTaskStatusChanged broadcasts task status change to project members
func (b *Broadcaster) BroadcastTaskStatusChanged(projectID, taskID, status string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageTaskStatusChanged, map[string]interface{}{
		"projectId": projectID,
		"taskId":    taskID,
		"status":    status,
	})
}

// ============================================
// Comment Broadcasting
// ============================================

// BroadcastCommentAdded broadcasts a new comment to project members
func (b *Broadcaster) BroadcastCommentAdded(projectID, taskID, commentID string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageCommentAdded, map[string]interface{}{
		"projectId": projectID,
		"taskId":    taskID,
		"commentId": commentID,
	})
}
