package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (string, *git.Repository) {
	dir, err := os.MkdirTemp("", "git-test-*")
	require.NoError(t, err)
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	// Create initial commit
	wt, err := repo.Worktree()
	require.NoError(t, err)
	testFile := filepath.Join(dir, "test.txt")
	err = os.WriteFile(testFile, []byte("test content"), 0644)
	require.NoError(t, err)
	_, err = wt.Add("test.txt")
	require.NoError(t, err)
	_, err = wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
		},
	})
	require.NoError(t, err)
	return dir, repo
}

// addBareRemote wires a local bare repository under the given remote
// name so pushes stay on the filesystem.
func addBareRemote(t *testing.T, repo *git.Repository, name string) string {
	bareDir, err := os.MkdirTemp("", "git-remote-*")
	require.NoError(t, err)
	t.Cleanup(func() {
		os.RemoveAll(bareDir)
	})
	_, err = git.PlainInit(bareDir, true)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: name,
		URLs: []string{bareDir},
	})
	require.NoError(t, err)
	return bareDir
}

func TestNewGitRepository(t *testing.T) {
	t.Run("Should create git repository for existing repo", func(t *testing.T) {
		dir, _ := setupTestRepo(t)
		oldPwd, _ := os.Getwd()
		err := os.Chdir(dir)
		require.NoError(t, err)
		defer os.Chdir(oldPwd)
		gitRepo, err := NewGitRepository()
		assert.NoError(t, err)
		assert.NotNil(t, gitRepo)
	})
	t.Run("Should return error for non-git directory", func(t *testing.T) {
		dir, err := os.MkdirTemp("", "non-git-*")
		require.NoError(t, err)
		defer os.RemoveAll(dir)
		oldPwd, _ := os.Getwd()
		err = os.Chdir(dir)
		require.NoError(t, err)
		defer os.Chdir(oldPwd)
		gitRepo, err := NewGitRepository()
		assert.Error(t, err)
		assert.Nil(t, gitRepo)
	})
}

func TestGitRepository_CurrentBranch(t *testing.T) {
	t.Run("Should return the branch HEAD points at", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		gitRepo := &gitRepository{repo: repo}
		branch, err := gitRepo.CurrentBranch(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "master", branch)
	})
}

func TestGitRepository_CreateTag(t *testing.T) {
	t.Run("Should create annotated tag with message", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		gitRepo := &gitRepository{repo: repo}
		err := gitRepo.CreateTag(context.Background(), "v1.0.0", "v1.0.0")
		assert.NoError(t, err)
		// Verify the tag is annotated and carries the message
		ref, err := repo.Tag("v1.0.0")
		require.NoError(t, err)
		tagObj, err := repo.TagObject(ref.Hash())
		require.NoError(t, err)
		assert.Equal(t, "v1.0.0\n", tagObj.Message)
	})
	t.Run("Should return error for duplicate tag", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		gitRepo := &gitRepository{repo: repo}
		err := gitRepo.CreateTag(context.Background(), "v1.0.0", "v1.0.0")
		require.NoError(t, err)
		err = gitRepo.CreateTag(context.Background(), "v1.0.0", "v1.0.0")
		assert.Error(t, err)
	})
}

func TestGitRepository_TagExists(t *testing.T) {
	t.Run("Should return true when tag exists", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		head, err := repo.Head()
		require.NoError(t, err)
		_, err = repo.CreateTag("v1.0.0", head.Hash(), nil)
		require.NoError(t, err)
		gitRepo := &gitRepository{repo: repo}
		exists, err := gitRepo.TagExists(context.Background(), "v1.0.0")
		assert.NoError(t, err)
		assert.True(t, exists)
	})
	t.Run("Should return false when tag does not exist", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		gitRepo := &gitRepository{repo: repo}
		exists, err := gitRepo.TagExists(context.Background(), "v1.0.0")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGitRepository_PushBranch(t *testing.T) {
	t.Run("Should push branch to the named remote", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		bareDir := addBareRemote(t, repo, "primary")
		gitRepo := &gitRepository{repo: repo}
		err := gitRepo.PushBranch(context.Background(), "primary", "master")
		assert.NoError(t, err)
		// Verify the bare remote received the branch
		bare, err := git.PlainOpen(bareDir)
		require.NoError(t, err)
		_, err = bare.Reference(plumbing.NewBranchReferenceName("master"), false)
		assert.NoError(t, err)
	})
	t.Run("Should treat up-to-date push as success", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		addBareRemote(t, repo, "primary")
		gitRepo := &gitRepository{repo: repo}
		require.NoError(t, gitRepo.PushBranch(context.Background(), "primary", "master"))
		assert.NoError(t, gitRepo.PushBranch(context.Background(), "primary", "master"))
	})
	t.Run("Should return error for unknown remote", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		gitRepo := &gitRepository{repo: repo}
		err := gitRepo.PushBranch(context.Background(), "nowhere", "master")
		assert.Error(t, err)
	})
}

func TestGitRepository_PushTag(t *testing.T) {
	t.Run("Should push tag to the named remote", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		bareDir := addBareRemote(t, repo, "primary")
		gitRepo := &gitRepository{repo: repo}
		require.NoError(t, gitRepo.CreateTag(context.Background(), "v1.0.0", "v1.0.0"))
		err := gitRepo.PushTag(context.Background(), "primary", "v1.0.0")
		assert.NoError(t, err)
		bare, err := git.PlainOpen(bareDir)
		require.NoError(t, err)
		_, err = bare.Reference(plumbing.NewTagReferenceName("v1.0.0"), false)
		assert.NoError(t, err)
	})
	t.Run("Should push the same tag to a second remote", func(t *testing.T) {
		_, repo := setupTestRepo(t)
		addBareRemote(t, repo, "primary")
		mirrorDir := addBareRemote(t, repo, "mirror")
		gitRepo := &gitRepository{repo: repo}
		require.NoError(t, gitRepo.CreateTag(context.Background(), "v1.0.0", "v1.0.0"))
		require.NoError(t, gitRepo.PushTag(context.Background(), "primary", "v1.0.0"))
		require.NoError(t, gitRepo.PushTag(context.Background(), "mirror", "v1.0.0"))
		mirror, err := git.PlainOpen(mirrorDir)
		require.NoError(t, err)
		_, err = mirror.Reference(plumbing.NewTagReferenceName("v1.0.0"), false)
		assert.NoError(t, err)
	})
}
