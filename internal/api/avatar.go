package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/rishav-dahal/studyapp/internal/database"
)

const maxAvatarSize = 5 << 20

// avatarFilename derives the storage path for an uploaded avatar from the
// account's email and id plus the upload's original extension, so re-uploads
// overwrite the previous file.
func avatarFilename(user database.User, originalName string) string {
	ext := strings.TrimPrefix(filepath.Ext(originalName), ".")
	return fmt.Sprintf("avatars/%s_%d.%s", user.Email, user.Id, ext)
}

func (s *StudyApp) saveAvatar(user database.User, file multipart.File, header *multipart.FileHeader) (string, error) {
	rel := avatarFilename(user, header.Filename)

	dst := filepath.Join(s.mediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	return rel, nil
}
