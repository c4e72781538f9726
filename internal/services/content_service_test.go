package services

import (
	"testing"

	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemComments(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemCommentService(db)
	owner := createUser(t, db, "owner", models.RoleResident)
	commenter := createUser(t, db, "commenter", models.RoleResident)
	item := createLostItem(t, db, owner.ID)

	_, err := svc.Create(item.ID, models.ItemKindLost, commenter.ID, "   ")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Create(uuid.New(), models.ItemKindLost, commenter.ID, "我好像见过")
	assert.ErrorIs(t, err, ErrNotFound)

	comment, err := svc.Create(item.ID, models.ItemKindLost, commenter.ID, "我好像在二号楼见过")
	require.NoError(t, err)
	assert.Equal(t, "commenter", comment.Username)

	comments, total, err := svc.ListByItem(item.ID, models.ItemKindLost, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, comments, 1)

	// only the author or an admin may delete
	err = svc.Delete(comment.ID, owner.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, svc.Delete(comment.ID, commenter.ID, false))
}

func TestPostsAndComments(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db)
	comments := NewPostCommentService(db)
	author := createUser(t, db, "author", models.RoleResident)
	reader := createUser(t, db, "reader", models.RoleResident)

	_, err := posts.Create(author.ID, &dto.CreatePostRequest{Title: " ", Content: "内容"})
	assert.ErrorIs(t, err, ErrBadRequest)

	post, err := posts.Create(author.ID, &dto.CreatePostRequest{Title: "周末活动", Content: "周六上午社区清洁"})
	require.NoError(t, err)
	assert.Equal(t, "author", post.Username)

	comment, err := comments.Create(post.ID, reader.ID, "我报名参加")
	require.NoError(t, err)

	listed, total, err := comments.ListByPost(post.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, comment.ID, listed[0].ID)

	// deleting the post takes its comments with it
	require.NoError(t, posts.Delete(post.ID, author.ID, false))
	var count int64
	db.Model(&models.PostComment{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Zero(t, count)
}

func TestPostUpdateOwnership(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db)
	author := createUser(t, db, "author", models.RoleResident)
	stranger := createUser(t, db, "stranger", models.RoleResident)

	post, err := posts.Create(author.ID, &dto.CreatePostRequest{Title: "标题", Content: "内容"})
	require.NoError(t, err)

	title := "新标题"
	_, err = posts.Update(post.ID, &dto.UpdatePostRequest{Title: &title}, stranger.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := posts.Update(post.ID, &dto.UpdatePostRequest{Title: &title}, author.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "新标题", got.Title)
}

func TestAnnouncements(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnnouncementService(db)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	sysadmin := createUser(t, db, "root", models.RoleSysadmin)

	published, err := svc.Create(admin.ID, &dto.CreateAnnouncementRequest{
		Title: "停水通知", Content: "周三上午停水",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AnnouncementStatusPublished, published.Status)
	assert.Equal(t, "admin", published.AdminName)

	sticky, err := svc.Create(admin.ID, &dto.CreateAnnouncementRequest{
		Title: "重要公告", Content: "置顶内容", IsSticky: true,
	})
	require.NoError(t, err)

	draft, err := svc.Create(admin.ID, &dto.CreateAnnouncementRequest{
		Title: "草稿", Content: "未发布", Status: models.AnnouncementStatusDraft,
	})
	require.NoError(t, err)

	// public listing excludes drafts and puts sticky first
	public, total, err := svc.ListPublic(1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, sticky.ID, public[0].ID)

	// drafts are invisible through the public getter
	_, err = svc.GetByID(draft.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetByID(draft.ID, false)
	require.NoError(t, err)

	// admin listing sees everything
	all, total, err := svc.ListAdmin("", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	// another admin cannot edit, a sysadmin can
	other := createUser(t, db, "admin2", models.RoleAdmin)
	newTitle := "修改后的标题"
	_, err = svc.Update(published.ID, &dto.UpdateAnnouncementRequest{Title: &newTitle}, other.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Update(published.ID, &dto.UpdateAnnouncementRequest{Title: &newTitle}, sysadmin.ID, true)
	require.NoError(t, err)
}
