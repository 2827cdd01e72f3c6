// Package web serves the server-rendered front end: login/register pages,
// the board list, the board page with its secret-link admission flow, and
// the Liveblocks authorization bridge.
package web

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ramchaik/gojo/internal/web/apiclient"
	"github.com/ramchaik/gojo/internal/web/auth"
	"github.com/ramchaik/gojo/pkg/liveblocks"
)

type Handler struct {
	API        *apiclient.Client
	Auth       *auth.Manager
	Liveblocks *liveblocks.Client
	Logger     *logrus.Logger
}

func NewHandler(api *apiclient.Client, am *auth.Manager, lb *liveblocks.Client, logger *logrus.Logger) *Handler {
	return &Handler{API: api, Auth: am, Liveblocks: lb, Logger: logger}
}

// Register wires all web routes onto the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.RegisterUser)
	r.GET("/logout", h.Logout)

	authed := r.Group("/", h.Auth.RequireAuth())
	authed.GET("/boards", h.Boards)
	authed.POST("/boards", h.CreateBoard)
	authed.GET("/boards/:boardId", h.Board)
	authed.POST("/boards/:boardId/rename", h.RenameBoard)
	authed.POST("/boards/:boardId/delete", h.DeleteBoard)
	authed.GET("/boards/:boardId/share", h.SharePage)
	authed.POST("/boards/:boardId/members", h.AddMember)
	authed.POST("/api/liveblocks-auth", h.LiveblocksAuth)
}

// Home redirects to the board list when a session exists, to /login
// otherwise.
func (h *Handler) Home(c *gin.Context) {
	if _, err := h.Auth.UserID(c); err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/boards")
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *Handler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	userID, err := h.API.Login(c.Request.Context(), email, password)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid email or password."})
			return
		}
		h.Logger.WithError(err).Error("login failed")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong. Try again."})
		return
	}
	if err := h.Auth.SetSession(c, userID); err != nil {
		h.Logger.WithError(err).Error("failed to set session")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong. Try again."})
		return
	}
	c.Redirect(http.StatusFound, "/boards")
}

func (h *Handler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

func (h *Handler) RegisterUser(c *gin.Context) {
	email := c.PostForm("email")
	name := c.PostForm("name")
	password := c.PostForm("password")

	exists, err := h.API.UserExists(c.Request.Context(), email)
	if err != nil {
		h.Logger.WithError(err).Error("exists check failed")
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"Error": "Something went wrong. Try again."})
		return
	}
	if exists {
		c.HTML(http.StatusConflict, "register.html", gin.H{"Error": "An account with that email already exists."})
		return
	}

	userID, err := h.API.Register(c.Request.Context(), email, name, password)
	if err != nil {
		h.Logger.WithError(err).Error("register failed")
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"Error": "Failed to create account."})
		return
	}
	if err := h.Auth.SetSession(c, userID); err != nil {
		h.Logger.WithError(err).Error("failed to set session")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/boards")
}

func (h *Handler) Logout(c *gin.Context) {
	h.Auth.ClearSession(c)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) Boards(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	user, err := h.API.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.Logger.WithError(err).Error("failed to load user")
		h.Auth.ClearSession(c)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	boards, err := h.API.GetBoards(c.Request.Context(), userID)
	if err != nil {
		h.Logger.WithError(err).Error("failed to list boards")
		c.HTML(http.StatusInternalServerError, "boards.html", gin.H{"User": user, "Error": "Failed to load boards."})
		return
	}
	c.HTML(http.StatusOK, "boards.html", gin.H{"User": user, "Boards": boards})
}

func (h *Handler) CreateBoard(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	b, err := h.API.CreateBoard(c.Request.Context(), userID, c.PostForm("boardName"))
	if err != nil {
		h.Logger.WithError(err).Error("failed to create board")
		c.Redirect(http.StatusFound, "/boards")
		return
	}
	c.Redirect(http.StatusFound, "/boards/"+b.ID)
}

// Board renders a single board. Admission: an existing role row lets the
// user straight in; otherwise a ?secret matching the board's secret id
// grants an Editor role; otherwise redirect home.
func (h *Handler) Board(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	boardID := c.Param("boardId")
	ctx := c.Request.Context()

	board, err := h.API.GetBoard(ctx, boardID)
	if err != nil {
		if apiclient.IsNotFound(err) {
			c.Redirect(http.StatusFound, "/boards")
			return
		}
		h.Logger.WithError(err).Error("failed to load board")
		c.Redirect(http.StatusFound, "/boards")
		return
	}

	if _, err := h.API.GetRole(ctx, boardID, userID); err != nil {
		if !apiclient.IsNotFound(err) {
			h.Logger.WithError(err).Error("failed to load board role")
			c.Redirect(http.StatusFound, "/boards")
			return
		}
		secret := c.Query("secret")
		allowed := false
		if secret != "" {
			allowed, err = h.API.CheckSecret(ctx, boardID, secret)
			if err != nil && !apiclient.IsNotFound(err) {
				h.Logger.WithError(err).Error("secret check failed")
			}
		}
		if !allowed {
			c.Redirect(http.StatusFound, "/boards")
			return
		}
		if err := h.API.UpsertEditorRole(ctx, boardID, userID); err != nil {
			h.Logger.WithError(err).Error("failed to grant editor role")
			c.Redirect(http.StatusFound, "/boards")
			return
		}
	}

	if err := h.API.TouchLastOpened(ctx, boardID); err != nil {
		h.Logger.WithError(err).Warn("failed to touch last opened")
	}

	isOwner, err := h.API.IsOwner(ctx, boardID, userID)
	if err != nil {
		h.Logger.WithError(err).Warn("ownership check failed")
	}

	c.HTML(http.StatusOK, "board.html", gin.H{
		"Board":   board,
		"IsOwner": isOwner,
		"UserID":  userID,
	})
}

func (h *Handler) RenameBoard(c *gin.Context) {
	boardID := c.Param("boardId")
	userID := auth.CurrentUserID(c)
	isOwner, err := h.API.IsOwner(c.Request.Context(), boardID, userID)
	if err != nil || !isOwner {
		c.Redirect(http.StatusFound, "/boards/"+boardID)
		return
	}
	if name := c.PostForm("newBoardName"); name != "" {
		if err := h.API.RenameBoard(c.Request.Context(), boardID, name); err != nil {
			h.Logger.WithError(err).Error("rename failed")
		}
	}
	c.Redirect(http.StatusFound, "/boards/"+boardID)
}

func (h *Handler) DeleteBoard(c *gin.Context) {
	boardID := c.Param("boardId")
	userID := auth.CurrentUserID(c)
	isOwner, err := h.API.IsOwner(c.Request.Context(), boardID, userID)
	if err != nil || !isOwner {
		c.Redirect(http.StatusFound, "/boards")
		return
	}
	if _, err := h.API.DeleteBoard(c.Request.Context(), boardID); err != nil {
		h.Logger.WithError(err).Error("delete failed")
	}
	c.Redirect(http.StatusFound, "/boards")
}

func (h *Handler) SharePage(c *gin.Context) {
	boardID := c.Param("boardId")
	userID := auth.CurrentUserID(c)
	ctx := c.Request.Context()

	if _, err := h.API.GetRole(ctx, boardID, userID); err != nil {
		c.Redirect(http.StatusFound, "/boards")
		return
	}
	board, err := h.API.GetBoard(ctx, boardID)
	if err != nil {
		c.Redirect(http.StatusFound, "/boards")
		return
	}
	members, err := h.API.ListMembers(ctx, boardID)
	if err != nil {
		h.Logger.WithError(err).Error("failed to list members")
	}

	var results []apiclient.User
	if q := c.Query("q"); q != "" {
		results, err = h.API.SearchUsers(ctx, q)
		if err != nil {
			h.Logger.WithError(err).Warn("member search failed")
		}
	}

	shareURL := h.shareURL(c, board)
	c.HTML(http.StatusOK, "share.html", gin.H{
		"Board":    board,
		"Members":  members,
		"Results":  results,
		"Query":    c.Query("q"),
		"Message":  c.Query("msg"),
		"ShareURL": shareURL,
	})
}

func (h *Handler) shareURL(c *gin.Context, board *apiclient.Board) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/boards/" + board.ID + "?secret=" + board.SecretID
}

func (h *Handler) AddMember(c *gin.Context) {
	boardID := c.Param("boardId")
	userID := auth.CurrentUserID(c)
	ctx := c.Request.Context()

	if _, err := h.API.GetRole(ctx, boardID, userID); err != nil {
		c.Redirect(http.StatusFound, "/boards")
		return
	}
	email := c.PostForm("email")
	msg, err := h.API.AddMember(ctx, boardID, email)
	if err != nil {
		if apiclient.IsNotFound(err) {
			msg = "No user with that email."
		} else {
			h.Logger.WithError(err).Error("add member failed")
			msg = "Failed to add member."
		}
	}
	c.Redirect(http.StatusFound, "/boards/"+boardID+"/share?msg="+url.QueryEscape(msg))
}

// LiveblocksAuth bridges a verified session into a Liveblocks grant: the
// API confirms the user holds a role on the room, then the upstream
// authorization response is proxied verbatim.
func (h *Handler) LiveblocksAuth(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	var req struct {
		Room string `json:"room" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room is required"})
		return
	}

	sess, err := h.API.PrepareLiveblocksSession(c.Request.Context(), userID, req.Room)
	if err != nil {
		if apiclient.IsNotFound(err) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this board"})
			return
		}
		h.Logger.WithError(err).Error("liveblocks session prepare failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	res, err := h.Liveblocks.AuthorizeUser(c.Request.Context(), sess.User.ID, liveblocks.UserInfo{
		Email:     sess.User.Email,
		Name:      sess.User.Name,
		AvatarURL: sess.User.AvatarURL,
	}, req.Room, liveblocks.FullAccess)
	if err != nil {
		h.Logger.WithError(err).Error("liveblocks authorize failed")
		c.JSON(http.StatusForbidden, gin.H{"error": "authorization failed"})
		return
	}
	c.Data(res.Status, "application/json", res.Body)
}
