package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/internal/middleware"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"github.com/snnyvrz/shelfshare/internal/validation"
	"gorm.io/gorm"
)

type GroupHandler struct {
	repo repository.GroupRepository
}

func NewGroupHandler(repo repository.GroupRepository) *GroupHandler {
	return &GroupHandler{repo: repo}
}

func (h *GroupHandler) RegisterRoutes(r *gin.RouterGroup) {
	groups := r.Group("/groups", middleware.RequireAdmin())
	{
		groups.GET("", h.ListGroups)
		groups.GET("/:name/members", h.ListMembers)
		groups.POST("/:name/members", h.AddMember)
		groups.DELETE("/:name/members/:user_id", h.RemoveMember)
	}
}

func writeMembershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrGroupNotFound):
		writeError(c, http.StatusNotFound, "GROUP_NOT_FOUND", "group not found")
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(c, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
	default:
		writeInternalError(c, err, "GROUP_UPDATE_FAILED", "failed to update group membership")
	}
}

// ListGroups godoc
// @Summary      List groups
// @Description  Groups with their capabilities. Admin only.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ListGroupsResponse
// @Failure      403  {object}  validation.ErrorResponse   "Not an admin"
// @Router       /groups [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, err, "GROUP_LIST_FAILED", "failed to fetch groups")
		return
	}

	data := make([]Group, 0, len(groups))
	for _, g := range groups {
		perms := make([]string, 0, len(g.Permissions))
		for _, p := range g.Permissions {
			perms = append(perms, p.Codename)
		}
		data = append(data, Group{Name: g.Name, Permissions: perms})
	}

	c.JSON(http.StatusOK, ListGroupsResponse{Data: data})
}

// ListMembers godoc
// @Summary      List group members
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Group name"
// @Success      200  {object}  ListMembersResponse
// @Failure      404  {object}  validation.ErrorResponse   "Group not found"
// @Router       /groups/{name}/members [get]
func (h *GroupHandler) ListMembers(c *gin.Context) {
	users, err := h.repo.Members(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeMembershipError(c, err)
		return
	}

	data := make([]Member, 0, len(users))
	for _, u := range users {
		data = append(data, Member{ID: u.ID, Email: u.Email, Name: u.FullName()})
	}

	c.JSON(http.StatusOK, ListMembersResponse{Data: data})
}

// AddMember godoc
// @Summary      Add a user to a group
// @Tags         groups
// @Accept       json
// @Security     BearerAuth
// @Param        name     path      string            true  "Group name"
// @Param        payload  body      AddMemberRequest  true  "User to add"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse   "Group or user not found"
// @Router       /groups/{name}/members [post]
func (h *GroupHandler) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.repo.AddMember(c.Request.Context(), c.Param("name"), req.UserID); err != nil {
		writeMembershipError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveMember godoc
// @Summary      Remove a user from a group
// @Tags         groups
// @Security     BearerAuth
// @Param        name     path      string  true  "Group name"
// @Param        user_id  path      string  true  "User ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      404  {object}  validation.ErrorResponse   "Group or user not found"
// @Router       /groups/{name}/members/{user_id} [delete]
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id", "INVALID_USER_ID", "invalid user id")
	if !ok {
		return
	}

	if err := h.repo.RemoveMember(c.Request.Context(), c.Param("name"), userID); err != nil {
		writeMembershipError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
