package services

import (
	"log"
	"sync"
	"time"

	"yulin/internal/storage"
	"yulin/internal/tree"
)

// SnapshotFile 快照文件名
const SnapshotFile = "comments.json"

// SnapshotService 异步把评论树落盘为 JSON 快照的服务。
// 写盘请求先进缓冲队列并去重，后台 worker 定时批量处理，
// 短时间内的连续变更只会落盘一次。
type SnapshotService struct {
	tr    *tree.CommentTree
	trMu  *sync.Mutex // 与 web 层共享的树锁
	store *storage.Store

	queue   chan struct{}
	pending bool
	mu      sync.Mutex
}

var (
	snapshotService *SnapshotService
	once            sync.Once
)

// InitSnapshotService 初始化单例快照服务并启动后台 worker
func InitSnapshotService(tr *tree.CommentTree, trMu *sync.Mutex, store *storage.Store) *SnapshotService {
	once.Do(func() {
		snapshotService = &SnapshotService{
			tr:    tr,
			trMu:  trMu,
			store: store,
			queue: make(chan struct{}, 64),
		}
		go snapshotService.worker()
	})
	return snapshotService
}

// GetSnapshotService 获取单例，必须先 Init
func GetSnapshotService() *SnapshotService {
	return snapshotService
}

// ScheduleSave 请求落盘（异步）。已有待处理请求时直接合并。
func (s *SnapshotService) ScheduleSave() {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.mu.Unlock()

	select {
	case s.queue <- struct{}{}:
	default:
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
		log.Println("快照队列已满，跳过本次落盘请求")
	}
}

// worker 后台消费落盘请求，ticker 节流
func (s *SnapshotService) worker() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	dirty := false
	for {
		select {
		case <-s.queue:
			dirty = true
		case <-ticker.C:
			if !dirty {
				continue
			}
			s.SaveNow()
			dirty = false
		}
	}
}

// SaveNow 同步落盘一次，用于需要立即生效的场景（如进程退出前）
func (s *SnapshotService) SaveNow() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()

	s.trMu.Lock()
	data, err := s.tr.ToJSON()
	s.trMu.Unlock()
	if err != nil {
		log.Printf("序列化快照失败: %v", err)
		return
	}

	if err := s.store.SaveText(SnapshotFile, data); err != nil {
		log.Printf("写入快照失败: %v", err)
		return
	}
}

// Restore 从最近的快照恢复评论树，没有快照时返回 false
func (s *SnapshotService) Restore() bool {
	if !s.store.Exists(SnapshotFile) {
		return false
	}
	data, err := s.store.LoadText(SnapshotFile)
	if err != nil {
		log.Printf("读取快照失败: %v", err)
		return false
	}

	s.trMu.Lock()
	err = s.tr.FromJSON(data)
	s.trMu.Unlock()
	if err != nil {
		log.Printf("快照内容损坏，忽略: %v", err)
		return false
	}
	return true
}
